package service

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

// LigneCommandeService writes order lines directly. Stock is left untouched;
// use PlacerCommande for stock-aware ordering.
type LigneCommandeService interface {
	List(ctx context.Context) ([]model.LigneCommande, error)
	Get(ctx context.Context, id int64) (*model.LigneCommande, error)
	Create(ctx context.Context, req dto.LigneCommandeRequest) (*model.LigneCommande, error)
	Update(ctx context.Context, id int64, req dto.LigneCommandeRequest) error
	Delete(ctx context.Context, id int64) error
}

type ligneCommandeService struct {
	repo  repository.LigneCommandeRepository
	cache StatsCache
}

func NewLigneCommandeService(repo repository.LigneCommandeRepository, cache StatsCache) LigneCommandeService {
	return &ligneCommandeService{repo: repo, cache: cache}
}

func ligneFromRequest(id int64, req dto.LigneCommandeRequest) *model.LigneCommande {
	return &model.LigneCommande{
		ID:               id,
		IDCommande:       req.IDCommande,
		IDProduit:        req.IDProduit,
		QuantiteCommande: req.QuantiteCommande,
		PrixUnitaire:     req.PrixUnitaire,
	}
}

func (s *ligneCommandeService) List(ctx context.Context) ([]model.LigneCommande, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("LigneCommande", err)
}

func (s *ligneCommandeService) Get(ctx context.Context, id int64) (*model.LigneCommande, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("LigneCommande", err)
	}
	return l, nil
}

func (s *ligneCommandeService) Create(ctx context.Context, req dto.LigneCommandeRequest) (*model.LigneCommande, error) {
	l := ligneFromRequest(0, req)
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, storeError("LigneCommande", err)
	}
	s.invalidateStats(ctx)
	return l, nil
}

func (s *ligneCommandeService) Update(ctx context.Context, id int64, req dto.LigneCommandeRequest) error {
	if err := s.repo.Update(ctx, ligneFromRequest(id, req)); err != nil {
		return storeError("LigneCommande", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *ligneCommandeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError("LigneCommande", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *ligneCommandeService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		logCacheError(err)
	}
}
