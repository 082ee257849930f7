package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/response"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/domain/document"
	"github.com/propside/portal-go/pkg/utils"
)

type DocumentHandler struct {
	distribution *application.DistributionService
	signing      *application.SigningService
}

func NewDocumentHandler(distribution *application.DistributionService, signing *application.SigningService) *DocumentHandler {
	return &DocumentHandler{distribution: distribution, signing: signing}
}

// POST /documents
func (h *DocumentHandler) IssueDocument(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input document.IssueDocumentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	doc, err := h.distribution.Issue(c.Request.Context(), actor, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// GET /documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	docs, err := h.distribution.ListDocuments(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GET /documents/inbox
func (h *DocumentHandler) ListInbox(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	docs, err := h.distribution.ListDocumentsForRecipient(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GET /documents/signatures/mine
func (h *DocumentHandler) ListMySignatures(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sigs, err := h.distribution.ListSignaturesForSigner(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sigs)
}

// GET /documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.distribution.GetDocument(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GET /documents/:id/signatures
func (h *DocumentHandler) ListSignatures(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sigs, err := h.distribution.ListSignatures(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sigs)
}

// GET /documents/:id/review — presents the artifact for signing.
func (h *DocumentHandler) ReviewDocument(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	_, artifact, err := h.signing.PresentForSignature(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", artifact)
}

// POST /documents/:id/sign
func (h *DocumentHandler) SignDocument(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input document.SignDocumentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	doc, err := h.signing.CompleteSignature(c.Request.Context(), actor, c.Param("id"), input.SignerName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
