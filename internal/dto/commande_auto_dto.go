package dto

import "github.com/shopspring/decimal"

// ─── POST /commandeauto ──────────────────────────────────────────────────────

const (
	MissingCommandeAutoParams = `Missing required parameters "date_commande", "idClient" and/or "lignescommandes"`
	MissingLigneAutoParams    = "Missing required parameters in one of the lignescommandes"
)

// LigneCommandeAutoRequest is one requested line. Validated before any store access.
type LigneCommandeAutoRequest struct {
	IDProduit        int64           `json:"idproduit"        validate:"required,gt=0"`
	QuantiteCommande int             `json:"quantitecommande" validate:"required,gt=0,max=2147483647"`
	PrixUnitaire     decimal.Decimal `json:"prixunitaire"     validate:"required,gt=0,lt=100000000"`
}

// CommandeAutoRequest is the placement request. Lines are validated one by one
// (no dive) so that a line failure gets its own message.
type CommandeAutoRequest struct {
	DateCommande string                     `json:"date_commande"   validate:"required"`
	IDClient     int64                      `json:"idClient"        validate:"required,gt=0"`
	Lignes       []LigneCommandeAutoRequest `json:"lignescommandes" validate:"required,min=1"`
}

// CommandeAutoResult is what a committed placement reports.
type CommandeAutoResult struct {
	IDCommande int64
	NbLignes   int
	Attempts   int
}

type CommandeAutoResponse struct {
	Message    string `json:"message"`
	IDCommande int64  `json:"idcommande"`
	NbLignes   int    `json:"lignes"`
}
