package handler

import (
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

// FournirHandler exposes the product/supplier links, addressed by
// /fournir/:idproduit/:idfournisseur.
type FournirHandler struct{ svc service.FournirService }

func NewFournirHandler(svc service.FournirService) *FournirHandler {
	return &FournirHandler{svc: svc}
}

func pairFromPath(c *gin.Context) (model.Fournir, bool) {
	idProduit, ok := paramID(c, "idproduit")
	if !ok {
		return model.Fournir{}, false
	}
	idFournisseur, ok := paramID(c, "idfournisseur")
	if !ok {
		return model.Fournir{}, false
	}
	return model.Fournir{IDProduit: idProduit, IDFournisseur: idFournisseur}, true
}

// List GET /fournir
func (h *FournirHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create POST /fournir
func (h *FournirHandler) Create(c *gin.Context) {
	var req dto.FournirRequest
	if !bindAndValidate(c, &req, dto.MissingFournirParams) {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Update PUT /fournir/:idproduit/:idfournisseur
func (h *FournirHandler) Update(c *gin.Context) {
	key, ok := pairFromPath(c)
	if !ok {
		return
	}
	var req dto.FournirUpdateRequest
	if !bindAndValidate(c, &req, dto.MissingFournirUpdateParams) {
		return
	}
	if err := h.svc.Rekey(c.Request.Context(), key, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete DELETE /fournir/:idproduit/:idfournisseur
func (h *FournirHandler) Delete(c *gin.Context) {
	key, ok := pairFromPath(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
