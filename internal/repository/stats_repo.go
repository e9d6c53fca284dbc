package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TopProduit is one row of the best-sellers aggregate.
type TopProduit struct {
	IDProduit       int64           `gorm:"column:idproduit"`
	NomReference    string          `gorm:"column:nomreference"`
	QuantiteVendue  int64           `gorm:"column:quantitevendue"`
	ChiffreAffaires decimal.Decimal `gorm:"column:chiffreaffaires"`
}

// VentesTotales is the revenue aggregate over a period.
type VentesTotales struct {
	Total           decimal.Decimal `gorm:"column:total"`
	NombreCommandes int64           `gorm:"column:nombrecommandes"`
}

// StatsRepository runs the read-only aggregates. Orders are filtered on
// commandes.datecommande.
type StatsRepository interface {
	TopProduits(ctx context.Context, periode Periode, limit int) ([]TopProduit, error)
	VentesTotales(ctx context.Context, periode Periode) (*VentesTotales, error)
}

type statsRepo struct{ db *gorm.DB }

func NewStatsRepository(db *gorm.DB) StatsRepository { return &statsRepo{db: db} }

func (r *statsRepo) TopProduits(ctx context.Context, periode Periode, limit int) ([]TopProduit, error) {
	q := r.db.WithContext(ctx).
		Table("lignescommandes AS l").
		Select(`p.id AS idproduit, p.nomreference AS nomreference,
			SUM(l.quantitecommande) AS quantitevendue,
			SUM(l.quantitecommande * l.prixunitaire) AS chiffreaffaires`).
		Joins("JOIN commandes c ON c.id = l.idcommande").
		Joins("JOIN produits p ON p.id = l.idproduit")
	q = periode.apply(q, "c.datecommande")

	var rows []TopProduit
	err := q.Group("p.id, p.nomreference").
		Order("quantitevendue desc, p.id asc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) VentesTotales(ctx context.Context, periode Periode) (*VentesTotales, error) {
	q := r.db.WithContext(ctx).
		Table("lignescommandes AS l").
		Select(`COALESCE(SUM(l.quantitecommande * l.prixunitaire), 0) AS total,
			COUNT(DISTINCT c.id) AS nombrecommandes`).
		Joins("JOIN commandes c ON c.id = l.idcommande")
	q = periode.apply(q, "c.datecommande")

	var out VentesTotales
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
