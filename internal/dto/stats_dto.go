package dto

import "github.com/shopspring/decimal"

// PeriodeFilter holds an optional inclusive date range (YYYY-MM-DD).
type PeriodeFilter struct {
	DateDebut string `form:"date_debut"`
	DateFin   string `form:"date_fin"`
}

type TopProduitsFilter struct {
	PeriodeFilter
	Limit int `form:"limit,default=5" validate:"min=1,max=100"`
}

type TopProduitResponse struct {
	IDProduit       int64           `json:"idproduit"`
	NomReference    string          `json:"nomreference"`
	QuantiteVendue  int64           `json:"quantitevendue"`
	ChiffreAffaires decimal.Decimal `json:"chiffreaffaires"`
}

type VentesTotalesResponse struct {
	Total           decimal.Decimal `json:"total"`
	NombreCommandes int64           `json:"nombrecommandes"`
	DateDebut       *string         `json:"date_debut"`
	DateFin         *string         `json:"date_fin"`
}
