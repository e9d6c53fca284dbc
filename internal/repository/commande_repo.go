package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

// CommandeFilter narrows GET /commandes/search. Zero ids are ignored.
type CommandeFilter struct {
	IDClient  int64
	IDProduit int64
	Periode   Periode
}

type CommandeRepository interface {
	List(ctx context.Context) ([]model.Commande, error)
	FindByID(ctx context.Context, id int64) (*model.Commande, error)
	// FindWithLignes loads the order, its lines and their products.
	FindWithLignes(ctx context.Context, id int64) (*model.Commande, error)
	Create(ctx context.Context, c *model.Commande) error
	Update(ctx context.Context, c *model.Commande) error
	// Delete removes the order and its lines in one transaction. Stock is not restored.
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter CommandeFilter) ([]model.Commande, error)
}

type commandeRepo struct{ db *gorm.DB }

func NewCommandeRepository(db *gorm.DB) CommandeRepository { return &commandeRepo{db: db} }

func (r *commandeRepo) List(ctx context.Context) ([]model.Commande, error) {
	var list []model.Commande
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *commandeRepo) FindByID(ctx context.Context, id int64) (*model.Commande, error) {
	var c model.Commande
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *commandeRepo) FindWithLignes(ctx context.Context, id int64) (*model.Commande, error) {
	var c model.Commande
	err := r.db.WithContext(ctx).
		Preload("Lignes", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Lignes.Produit").
		First(&c, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *commandeRepo) Create(ctx context.Context, c *model.Commande) error {
	return translate(r.db.WithContext(ctx).Omit("Lignes").Create(c).Error)
}

func (r *commandeRepo) Update(ctx context.Context, c *model.Commande) error {
	return affected(r.db.WithContext(ctx).Model(&model.Commande{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{"datecommande": c.DateCommande, "idclient": c.IDClient}))
}

func (r *commandeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idcommande = ?", id).Delete(&model.LigneCommande{}).Error; err != nil {
			return translate(err)
		}
		return affected(tx.Delete(&model.Commande{}, id))
	})
}

func (r *commandeRepo) Search(ctx context.Context, filter CommandeFilter) ([]model.Commande, error) {
	q := r.db.WithContext(ctx).Model(&model.Commande{})
	if filter.IDClient > 0 {
		q = q.Where("idclient = ?", filter.IDClient)
	}
	if filter.IDProduit > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM lignescommandes l WHERE l.idcommande = commandes.id AND l.idproduit = ?)", filter.IDProduit)
	}
	q = filter.Periode.apply(q, "datecommande")

	var list []model.Commande
	err := q.Order("datecommande desc, id desc").Find(&list).Error
	return list, err
}
