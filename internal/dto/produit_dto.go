package dto

import "github.com/shopspring/decimal"

const MissingProduitParams = `Missing required parameters "nomreference", "quantitestock", "prixunitaire" and/or "idcategorie"`

// ProduitRequest is shared by create and update. QuantiteStock is a pointer so
// that an explicit 0 is accepted. Negative stock is allowed here (administrative
// override, unlike order placement); only the INT column range is enforced.
type ProduitRequest struct {
	NomReference  string          `json:"nomreference"  validate:"required,max=100"`
	QuantiteStock *int            `json:"quantitestock" validate:"required,min=-2147483648,max=2147483647"`
	PrixUnitaire  decimal.Decimal `json:"prixunitaire"  validate:"required,gt=0,lt=100000000"`
	IDCategorie   int64           `json:"idcategorie"   validate:"required,gt=0"`
}

// StockFaibleFilter is bound from the query string of GET /produits/stock-faible.
type StockFaibleFilter struct {
	Seuil *int `form:"seuil" validate:"omitempty,min=0"`
}
