package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/response"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/domain/contract"
	"github.com/propside/portal-go/pkg/utils"
)

type ContractHandler struct {
	contracts *application.ContractService
}

func NewContractHandler(contracts *application.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// POST /contracts
func (h *ContractHandler) IssueContract(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input contract.IssueContractDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	created, err := h.contracts.Issue(c.Request.Context(), actor, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	contracts, err := h.contracts.ListContracts(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// GET /contracts/mine
func (h *ContractHandler) ListMyContracts(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	contracts, err := h.contracts.ListContractsByOwner(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// GET /contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	found, err := h.contracts.GetContract(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// PUT /contracts/:id/agree
func (h *ContractHandler) AgreeContract(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.contracts.Agree(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PUT /contracts/:id/disagree
func (h *ContractHandler) DisagreeContract(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input contract.DisagreeContractDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	updated, err := h.contracts.Disagree(c.Request.Context(), actor, c.Param("id"), input.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
