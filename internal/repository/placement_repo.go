package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlacementTx is the set of statements an order placement may issue. Every
// method runs on the same database transaction.
type PlacementTx interface {
	InsertCommande(c *model.Commande) error
	// LockStock reads the product stock with SELECT ... FOR UPDATE. The row
	// stays locked until the transaction ends. Unknown product → ErrNotFound.
	LockStock(idProduit int64) (int, error)
	SetStock(idProduit int64, stock int) error
	InsertLigne(l *model.LigneCommande) error
}

// PlacementStore runs fn inside one transaction: commit when fn returns nil,
// rollback otherwise. ctx bounds the whole unit of work.
type PlacementStore interface {
	InTx(ctx context.Context, fn func(tx PlacementTx) error) error
}

type placementStore struct{ db *gorm.DB }

func NewPlacementStore(db *gorm.DB) PlacementStore { return &placementStore{db: db} }

func (s *placementStore) InTx(ctx context.Context, fn func(tx PlacementTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&placementTx{tx: tx})
	})
}

type placementTx struct{ tx *gorm.DB }

func (t *placementTx) InsertCommande(c *model.Commande) error {
	return translate(t.tx.Omit("Lignes").Create(c).Error)
}

func (t *placementTx) LockStock(idProduit int64) (int, error) {
	var p model.Produit
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "quantitestock").
		Where("id = ?", idProduit).
		Take(&p).Error
	if err != nil {
		return 0, translate(err)
	}
	return p.QuantiteStock, nil
}

func (t *placementTx) SetStock(idProduit int64, stock int) error {
	return affected(t.tx.Model(&model.Produit{}).Where("id = ?", idProduit).Update("quantitestock", stock))
}

func (t *placementTx) InsertLigne(l *model.LigneCommande) error {
	return translate(t.tx.Omit("Produit").Create(l).Error)
}
