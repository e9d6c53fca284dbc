package handler

import (
	"errors"
	"net/http"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
)

type CommandeAutoHandler struct{ svc service.CommandeService }

func NewCommandeAutoHandler(svc service.CommandeService) *CommandeAutoHandler {
	return &CommandeAutoHandler{svc: svc}
}

// Create POST /commandeauto
// Validation is left to the service so that it runs before any store access
// whatever the caller.
func (h *CommandeAutoHandler) Create(c *gin.Context) {
	var req dto.CommandeAutoRequest
	if !bindJSON(c, &req, dto.MissingCommandeAutoParams) {
		return
	}

	res, err := h.svc.PlacerCommande(c.Request.Context(), req)
	if err != nil {
		status := statusOf(err)
		// An unknown product or client is a bad request here, not a missing resource.
		if errors.Is(err, service.ErrNotFound) {
			status = http.StatusBadRequest
		}
		respondErrorStatus(c, err, status)
		return
	}

	c.JSON(http.StatusCreated, dto.CommandeAutoResponse{
		Message:    service.MsgCommandeCreated,
		IDCommande: res.IDCommande,
		NbLignes:   res.NbLignes,
	})
}
