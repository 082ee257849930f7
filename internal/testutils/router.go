package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/routes"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/notify"
)

func SetupRouter(svc *application.Services, bus *notify.ChangeBus) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, svc, bus)
	return r
}
