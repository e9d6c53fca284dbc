package handler

import (
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

type FournisseursHandler struct{ svc service.FournisseurService }

func NewFournisseursHandler(svc service.FournisseurService) *FournisseursHandler {
	return &FournisseursHandler{svc: svc}
}

// List GET /fournisseurs
func (h *FournisseursHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /fournisseurs/:id
func (h *FournisseursHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	f, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Create POST /fournisseurs
func (h *FournisseursHandler) Create(c *gin.Context) {
	var req dto.FournisseurRequest
	if !bindAndValidate(c, &req, dto.MissingFournisseurParams) {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Update PUT /fournisseurs/:id
func (h *FournisseursHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.FournisseurRequest
	if !bindAndValidate(c, &req, dto.MissingFournisseurParams) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete DELETE /fournisseurs/:id
func (h *FournisseursHandler) Delete(c *gin.Context) {
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
