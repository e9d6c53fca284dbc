package model

// Categorie classifies products.
type Categorie struct {
	ID  int64  `gorm:"primaryKey" json:"id"`
	Nom string `gorm:"not null" json:"nom"`
}

// TableName overrides GORM's default pluralization (categories is already plural).
func (Categorie) TableName() string { return "categories" }
