package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commande is an order header. A placement creates it together with its lines
// in a single transaction.
type Commande struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	DateCommande time.Time `gorm:"column:datecommande;type:date;not null" json:"datecommande"`
	IDClient     int64     `gorm:"column:idclient;not null" json:"idclient"`

	Lignes []LigneCommande `gorm:"foreignKey:IDCommande" json:"-"`
}

func (Commande) TableName() string { return "commandes" }

// LigneCommande records one ordered product. PrixUnitaire is the price agreed
// at order time, not the current catalogue price.
type LigneCommande struct {
	ID               int64           `gorm:"primaryKey" json:"id"`
	IDCommande       int64           `gorm:"column:idcommande;not null;index" json:"idcommande"`
	IDProduit        int64           `gorm:"column:idproduit;not null;index" json:"idproduit"`
	QuantiteCommande int             `gorm:"column:quantitecommande;not null" json:"quantitecommande"`
	PrixUnitaire     decimal.Decimal `gorm:"column:prixunitaire;type:numeric(10,2);not null" json:"prixunitaire"`

	Produit *Produit `gorm:"foreignKey:IDProduit" json:"-"`
}

func (LigneCommande) TableName() string { return "lignescommandes" }

// Montant is quantity × unit price for this line.
func (l LigneCommande) Montant() decimal.Decimal {
	return l.PrixUnitaire.Mul(decimal.NewFromInt(int64(l.QuantiteCommande)))
}
