package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/propside/portal-go/internal/api/response"
	"github.com/propside/portal-go/internal/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var watchedCollections = []notify.Collection{
	notify.CollectionTemplates,
	notify.CollectionDocuments,
	notify.CollectionSignatures,
	notify.CollectionContracts,
}

// WatchChangesHandler streams collection change events to the client until it
// disconnects. The portal frontend uses this to refresh lists another session
// has modified.
func WatchChangesHandler(bus *notify.ChangeBus) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
			return
		}

		// writeChan is never closed: a publish snapshotted before unsubscribe
		// may still invoke the handler after the client is gone, so the
		// handler checks done instead and the late event is dropped.
		writeChan := make(chan []byte, 100)
		done := make(chan struct{})

		unsubscribes := make([]func(), 0, len(watchedCollections))
		for _, collection := range watchedCollections {
			unsub := bus.Subscribe(collection, func(ctx context.Context, event notify.ChangeEvent) error {
				payload, err := json.Marshal(event)
				if err != nil {
					return err
				}
				select {
				case <-done:
				case writeChan <- payload:
				default:
					// Slow consumer; drop rather than block the publisher.
				}
				return nil
			})
			unsubscribes = append(unsubscribes, unsub)
		}

		go func() {
			defer conn.Close()
			for {
				select {
				case <-done:
					return
				case msg := <-writeChan:
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				for _, unsub := range unsubscribes {
					unsub()
				}
				close(done)
				break
			}
		}
	}
}
