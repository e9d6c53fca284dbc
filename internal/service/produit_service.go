package service

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"

	"github.com/rs/zerolog/log"
)

// ProduitService defines the business logic contract for products.
type ProduitService interface {
	List(ctx context.Context) ([]model.Produit, error)
	Get(ctx context.Context, id int64) (*model.Produit, error)
	Create(ctx context.Context, req dto.ProduitRequest) (*model.Produit, error)
	Update(ctx context.Context, id int64, req dto.ProduitRequest) error
	Delete(ctx context.Context, id int64) error
}

type produitService struct {
	repo  repository.ProduitRepository
	cache StatsCache
}

// NewProduitService wires the product service. cache may be nil; top-produits
// entries carry product names, so updates and deletions invalidate it.
func NewProduitService(repo repository.ProduitRepository, cache StatsCache) ProduitService {
	return &produitService{repo: repo, cache: cache}
}

func produitFromRequest(id int64, req dto.ProduitRequest) *model.Produit {
	p := &model.Produit{
		ID:           id,
		NomReference: req.NomReference,
		PrixUnitaire: req.PrixUnitaire,
		IDCategorie:  req.IDCategorie,
	}
	if req.QuantiteStock != nil {
		p.QuantiteStock = *req.QuantiteStock
	}
	return p
}

func (s *produitService) List(ctx context.Context) ([]model.Produit, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("Produit", err)
}

func (s *produitService) Get(ctx context.Context, id int64) (*model.Produit, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("Produit", err)
	}
	return p, nil
}

func (s *produitService) Create(ctx context.Context, req dto.ProduitRequest) (*model.Produit, error) {
	p := produitFromRequest(0, req)
	warnNegativeStock(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, storeError("Produit", err)
	}
	return p, nil
}

// Update overwrites the stock as given. Only order placement enforces stock >= 0.
func (s *produitService) Update(ctx context.Context, id int64, req dto.ProduitRequest) error {
	p := produitFromRequest(id, req)
	warnNegativeStock(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return storeError("Produit", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *produitService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError("Produit", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *produitService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		logCacheError(err)
	}
}

func warnNegativeStock(p *model.Produit) {
	if p.QuantiteStock < 0 {
		log.Warn().
			Int64("idproduit", p.ID).
			Int("quantitestock", p.QuantiteStock).
			Msg("produit: stock set below zero by direct write")
	}
}
