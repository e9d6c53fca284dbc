package handler

import (
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategorieService }

func NewCategoriesHandler(svc service.CategorieService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List GET /categories
func (h *CategoriesHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /categories/:id
func (h *CategoriesHandler) Get(c *gin.Context) {
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

// Create POST /categories
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CategorieRequest
	if !bindAndValidate(c, &req, dto.MissingCategorieParams) {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Update PUT /categories/:id
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CategorieRequest
	if !bindAndValidate(c, &req, dto.MissingCategorieParams) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete DELETE /categories/:id
func (h *CategoriesHandler) Delete(c *gin.Context) {
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
