package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

// CategorieRepository defines CRUD operations for Categorie.
type CategorieRepository interface {
	List(ctx context.Context) ([]model.Categorie, error)
	FindByID(ctx context.Context, id int64) (*model.Categorie, error)
	Create(ctx context.Context, c *model.Categorie) error
	Update(ctx context.Context, c *model.Categorie) error
	Delete(ctx context.Context, id int64) error
}

type categorieRepository struct{ db *gorm.DB }

func NewCategorieRepository(db *gorm.DB) CategorieRepository {
	return &categorieRepository{db: db}
}

func (r *categorieRepository) List(ctx context.Context) ([]model.Categorie, error) {
	var list []model.Categorie
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *categorieRepository) FindByID(ctx context.Context, id int64) (*model.Categorie, error) {
	var c model.Categorie
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categorieRepository) Create(ctx context.Context, c *model.Categorie) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categorieRepository) Update(ctx context.Context, c *model.Categorie) error {
	return affected(r.db.WithContext(ctx).Model(&model.Categorie{}).Where("id = ?", c.ID).Update("nom", c.Nom))
}

func (r *categorieRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Categorie{}, id))
}
