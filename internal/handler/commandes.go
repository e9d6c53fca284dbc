package handler

import (
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

type CommandesHandler struct{ svc service.CommandeService }

func NewCommandesHandler(svc service.CommandeService) *CommandesHandler {
	return &CommandesHandler{svc: svc}
}

// List GET /commandes
func (h *CommandesHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /commandes/:id
func (h *CommandesHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Create POST /commandes
func (h *CommandesHandler) Create(c *gin.Context) {
	var req dto.CommandeRequest
	if !bindAndValidate(c, &req, dto.MissingCommandeParams) {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Update PUT /commandes/:id
func (h *CommandesHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CommandeRequest
	if !bindAndValidate(c, &req, dto.MissingCommandeParams) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete DELETE /commandes/:id
func (h *CommandesHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
