package service

import (
	"context"
	"fmt"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

// StatsService answers the read-only queries. Aggregates are served from the
// cache when one is configured.
type StatsService interface {
	TopProduits(ctx context.Context, f dto.TopProduitsFilter) ([]dto.TopProduitResponse, error)
	VentesTotales(ctx context.Context, f dto.PeriodeFilter) (*dto.VentesTotalesResponse, error)
	StockFaible(ctx context.Context, f dto.StockFaibleFilter) ([]model.Produit, error)
	SearchCommandes(ctx context.Context, f dto.CommandeSearchFilter) ([]model.Commande, error)
}

type statsService struct {
	stats          repository.StatsRepository
	produits       repository.ProduitRepository
	commandes      repository.CommandeRepository
	cache          StatsCache
	seuilParDefaut int
}

func NewStatsService(
	stats repository.StatsRepository,
	produits repository.ProduitRepository,
	commandes repository.CommandeRepository,
	cache StatsCache,
	lowStockThreshold int,
) StatsService {
	return &statsService{
		stats:          stats,
		produits:       produits,
		commandes:      commandes,
		cache:          cache,
		seuilParDefaut: lowStockThreshold,
	}
}

func (s *statsService) TopProduits(ctx context.Context, f dto.TopProduitsFilter) ([]dto.TopProduitResponse, error) {
	periode, err := parsePeriode(f.PeriodeFilter)
	if err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = 5
	}

	var out []dto.TopProduitResponse
	key := fmt.Sprintf("top:%d:%s:%s", f.Limit, f.DateDebut, f.DateFin)
	err = s.cached(ctx, key, &out, func() error {
		rows, err := s.stats.TopProduits(ctx, periode, f.Limit)
		if err != nil {
			return storeError("Stats", err)
		}
		out = make([]dto.TopProduitResponse, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.TopProduitResponse{
				IDProduit:       r.IDProduit,
				NomReference:    r.NomReference,
				QuantiteVendue:  r.QuantiteVendue,
				ChiffreAffaires: r.ChiffreAffaires,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *statsService) VentesTotales(ctx context.Context, f dto.PeriodeFilter) (*dto.VentesTotalesResponse, error) {
	periode, err := parsePeriode(f)
	if err != nil {
		return nil, err
	}

	var out dto.VentesTotalesResponse
	key := fmt.Sprintf("ventes:%s:%s", f.DateDebut, f.DateFin)
	err = s.cached(ctx, key, &out, func() error {
		v, err := s.stats.VentesTotales(ctx, periode)
		if err != nil {
			return storeError("Stats", err)
		}
		out = dto.VentesTotalesResponse{
			Total:           v.Total,
			NombreCommandes: v.NombreCommandes,
			DateDebut:       optional(f.DateDebut),
			DateFin:         optional(f.DateFin),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *statsService) cached(ctx context.Context, key string, dst interface{}, load func() error) error {
	if s.cache == nil {
		return load()
	}
	return s.cache.GetOrLoad(ctx, key, dst, load)
}

func (s *statsService) StockFaible(ctx context.Context, f dto.StockFaibleFilter) ([]model.Produit, error) {
	seuil := s.seuilParDefaut
	if f.Seuil != nil {
		seuil = *f.Seuil
	}
	list, err := s.produits.StockFaible(ctx, seuil)
	return list, storeError("Produit", err)
}

func (s *statsService) SearchCommandes(ctx context.Context, f dto.CommandeSearchFilter) ([]model.Commande, error) {
	periode, err := parsePeriode(f.PeriodeFilter)
	if err != nil {
		return nil, err
	}
	list, err := s.commandes.Search(ctx, repository.CommandeFilter{
		IDClient:  f.IDClient,
		IDProduit: f.IDProduit,
		Periode:   periode,
	})
	return list, storeError("Commande", err)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
