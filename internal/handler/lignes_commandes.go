package handler

import (
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

type LignesCommandesHandler struct{ svc service.LigneCommandeService }

func NewLignesCommandesHandler(svc service.LigneCommandeService) *LignesCommandesHandler {
	return &LignesCommandesHandler{svc: svc}
}

// List GET /lignescommandes
func (h *LignesCommandesHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /lignescommandes/:id
func (h *LignesCommandesHandler) Get(c *gin.Context) {
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

// Create POST /lignescommandes
func (h *LignesCommandesHandler) Create(c *gin.Context) {
	var req dto.LigneCommandeRequest
	if !bindAndValidate(c, &req, dto.MissingLigneCommandeParams) {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Update PUT /lignescommandes/:id
func (h *LignesCommandesHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.LigneCommandeRequest
	if !bindAndValidate(c, &req, dto.MissingLigneCommandeParams) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete DELETE /lignescommandes/:id
func (h *LignesCommandesHandler) Delete(c *gin.Context) {
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
