package dto

import "github.com/shopspring/decimal"

const (
	MissingCommandeParams      = `Missing required parameters "datecommande" and/or "idclient"`
	MissingLigneCommandeParams = `Missing required parameters "idcommande", "idproduit", "quantitecommande" and/or "prixunitaire"`
)

// CommandeRequest creates or updates an order header directly (no stock logic).
type CommandeRequest struct {
	DateCommande string `json:"datecommande" validate:"required"`
	IDClient     int64  `json:"idclient"     validate:"required,gt=0"`
}

// LigneCommandeRequest creates or updates an order line directly (no stock logic).
type LigneCommandeRequest struct {
	IDCommande       int64           `json:"idcommande"       validate:"required,gt=0"`
	IDProduit        int64           `json:"idproduit"        validate:"required,gt=0"`
	QuantiteCommande int             `json:"quantitecommande" validate:"required,gt=0,max=2147483647"`
	PrixUnitaire     decimal.Decimal `json:"prixunitaire"     validate:"required,gt=0,lt=100000000"`
}

// CommandeSearchFilter is bound from the query string of GET /commandes/search.
type CommandeSearchFilter struct {
	PeriodeFilter
	IDClient  int64 `form:"idclient"  validate:"min=0"`
	IDProduit int64 `form:"idproduit" validate:"min=0"`
}
