package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

// FournirRepository manages product/supplier links, keyed by the pair.
type FournirRepository interface {
	List(ctx context.Context) ([]model.Fournir, error)
	Create(ctx context.Context, f *model.Fournir) error
	// Rekey replaces the pair old with next.
	Rekey(ctx context.Context, old, next model.Fournir) error
	Delete(ctx context.Context, key model.Fournir) error
}

type fournirRepo struct{ db *gorm.DB }

func NewFournirRepository(db *gorm.DB) FournirRepository { return &fournirRepo{db: db} }

func (r *fournirRepo) List(ctx context.Context) ([]model.Fournir, error) {
	var list []model.Fournir
	err := r.db.WithContext(ctx).Order("idproduit asc, idfournisseur asc").Find(&list).Error
	return list, err
}

func (r *fournirRepo) Create(ctx context.Context, f *model.Fournir) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *fournirRepo) Rekey(ctx context.Context, old, next model.Fournir) error {
	return affected(r.db.WithContext(ctx).Model(&model.Fournir{}).
		Where("idproduit = ? AND idfournisseur = ?", old.IDProduit, old.IDFournisseur).
		Updates(map[string]interface{}{
			"idproduit":     next.IDProduit,
			"idfournisseur": next.IDFournisseur,
		}))
}

func (r *fournirRepo) Delete(ctx context.Context, key model.Fournir) error {
	return affected(r.db.WithContext(ctx).
		Where("idproduit = ? AND idfournisseur = ?", key.IDProduit, key.IDFournisseur).
		Delete(&model.Fournir{}))
}
