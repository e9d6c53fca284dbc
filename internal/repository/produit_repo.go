package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

// ProduitRepository defines the data access contract for products.
// Stock changes made by order placement go through PlacementStore instead.
type ProduitRepository interface {
	List(ctx context.Context) ([]model.Produit, error)
	FindByID(ctx context.Context, id int64) (*model.Produit, error)
	Create(ctx context.Context, p *model.Produit) error
	// Update overwrites every column, stock included (administrative override).
	Update(ctx context.Context, p *model.Produit) error
	Delete(ctx context.Context, id int64) error
	// StockFaible lists products whose stock is strictly below seuil, lowest first.
	StockFaible(ctx context.Context, seuil int) ([]model.Produit, error)
}

type produitRepo struct{ db *gorm.DB }

func NewProduitRepository(db *gorm.DB) ProduitRepository { return &produitRepo{db: db} }

func (r *produitRepo) List(ctx context.Context) ([]model.Produit, error) {
	var produits []model.Produit
	err := r.db.WithContext(ctx).Order("id asc").Find(&produits).Error
	return produits, err
}

func (r *produitRepo) FindByID(ctx context.Context, id int64) (*model.Produit, error) {
	var p model.Produit
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *produitRepo) Create(ctx context.Context, p *model.Produit) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *produitRepo) Update(ctx context.Context, p *model.Produit) error {
	// A map keeps zero values (stock 0) in the SET clause.
	return affected(r.db.WithContext(ctx).Model(&model.Produit{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"nomreference":  p.NomReference,
			"quantitestock": p.QuantiteStock,
			"prixunitaire":  p.PrixUnitaire,
			"idcategorie":   p.IDCategorie,
		}))
}

func (r *produitRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Produit{}, id))
}

func (r *produitRepo) StockFaible(ctx context.Context, seuil int) ([]model.Produit, error) {
	var produits []model.Produit
	err := r.db.WithContext(ctx).
		Where("quantitestock < ?", seuil).
		Order("quantitestock asc, id asc").
		Find(&produits).Error
	return produits, err
}
