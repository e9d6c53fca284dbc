package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

// LigneCommandeRepository gives direct access to order lines. It never
// touches stock: only PlacementStore does.
type LigneCommandeRepository interface {
	List(ctx context.Context) ([]model.LigneCommande, error)
	FindByID(ctx context.Context, id int64) (*model.LigneCommande, error)
	Create(ctx context.Context, l *model.LigneCommande) error
	Update(ctx context.Context, l *model.LigneCommande) error
	Delete(ctx context.Context, id int64) error
}

type ligneCommandeRepo struct{ db *gorm.DB }

func NewLigneCommandeRepository(db *gorm.DB) LigneCommandeRepository {
	return &ligneCommandeRepo{db: db}
}

func (r *ligneCommandeRepo) List(ctx context.Context) ([]model.LigneCommande, error) {
	var list []model.LigneCommande
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *ligneCommandeRepo) FindByID(ctx context.Context, id int64) (*model.LigneCommande, error) {
	var l model.LigneCommande
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *ligneCommandeRepo) Create(ctx context.Context, l *model.LigneCommande) error {
	return translate(r.db.WithContext(ctx).Omit("Produit").Create(l).Error)
}

func (r *ligneCommandeRepo) Update(ctx context.Context, l *model.LigneCommande) error {
	return affected(r.db.WithContext(ctx).Model(&model.LigneCommande{}).Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"idcommande":       l.IDCommande,
			"idproduit":        l.IDProduit,
			"quantitecommande": l.QuantiteCommande,
			"prixunitaire":     l.PrixUnitaire,
		}))
}

func (r *ligneCommandeRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.LigneCommande{}, id))
}
