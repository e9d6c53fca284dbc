package model

// Fournisseur is a supplier. Linked to products through Fournir.
type Fournisseur struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Nom        string `gorm:"not null" json:"nom"`
	CodePostal string `gorm:"column:codepostal;not null" json:"codepostal"`
}

func (Fournisseur) TableName() string { return "fournisseurs" }
