package model

// Fournir links a product to one of its suppliers. The pair is the primary key.
type Fournir struct {
	IDProduit     int64 `gorm:"column:idproduit;primaryKey" json:"idproduit"`
	IDFournisseur int64 `gorm:"column:idfournisseur;primaryKey" json:"idfournisseur"`
}

func (Fournir) TableName() string { return "fournir" }
