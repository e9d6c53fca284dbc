package handler

import (
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the read-only queries.
type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// TopProduits GET /stats/top-produits?limit=&date_debut=&date_fin=
func (h *StatsHandler) TopProduits(c *gin.Context) {
	var f dto.TopProduitsFilter
	if !bindQuery(c, &f) {
		return
	}
	rows, err := h.svc.TopProduits(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// VentesTotales GET /stats/ventes-totales?date_debut=&date_fin=
func (h *StatsHandler) VentesTotales(c *gin.Context) {
	var f dto.PeriodeFilter
	if !bindQuery(c, &f) {
		return
	}
	v, err := h.svc.VentesTotales(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// StockFaible GET /produits/stock-faible?seuil=
func (h *StatsHandler) StockFaible(c *gin.Context) {
	var f dto.StockFaibleFilter
	if !bindQuery(c, &f) {
		return
	}
	list, err := h.svc.StockFaible(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// SearchCommandes GET /commandes/search?idclient=&idproduit=&date_debut=&date_fin=
func (h *StatsHandler) SearchCommandes(c *gin.Context) {
	var f dto.CommandeSearchFilter
	if !bindQuery(c, &f) {
		return
	}
	list, err := h.svc.SearchCommandes(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
