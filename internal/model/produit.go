package model

import "github.com/shopspring/decimal"

// Produit is a catalogue item. QuantiteStock is decremented by order placement
// (checked, never below zero) and may be overwritten by a direct update (unchecked).
type Produit struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	NomReference  string          `gorm:"column:nomreference;not null" json:"nomreference"`
	QuantiteStock int             `gorm:"column:quantitestock;not null;default:0" json:"quantitestock"`
	PrixUnitaire  decimal.Decimal `gorm:"column:prixunitaire;type:numeric(10,2);not null" json:"prixunitaire"`
	IDCategorie   int64           `gorm:"column:idcategorie;not null" json:"idcategorie"`
}

func (Produit) TableName() string { return "produits" }
