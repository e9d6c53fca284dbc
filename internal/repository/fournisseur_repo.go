package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

// FournisseurRepository defines CRUD operations for suppliers.
type FournisseurRepository interface {
	List(ctx context.Context) ([]model.Fournisseur, error)
	FindByID(ctx context.Context, id int64) (*model.Fournisseur, error)
	Create(ctx context.Context, f *model.Fournisseur) error
	Update(ctx context.Context, f *model.Fournisseur) error
	Delete(ctx context.Context, id int64) error
}

type fournisseurRepo struct{ db *gorm.DB }

func NewFournisseurRepository(db *gorm.DB) FournisseurRepository {
	return &fournisseurRepo{db: db}
}

func (r *fournisseurRepo) List(ctx context.Context) ([]model.Fournisseur, error) {
	var list []model.Fournisseur
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *fournisseurRepo) FindByID(ctx context.Context, id int64) (*model.Fournisseur, error) {
	var f model.Fournisseur
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *fournisseurRepo) Create(ctx context.Context, f *model.Fournisseur) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *fournisseurRepo) Update(ctx context.Context, f *model.Fournisseur) error {
	return affected(r.db.WithContext(ctx).Model(&model.Fournisseur{}).Where("id = ?", f.ID).
		Updates(map[string]interface{}{"nom": f.Nom, "codepostal": f.CodePostal}))
}

func (r *fournisseurRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Fournisseur{}, id))
}
