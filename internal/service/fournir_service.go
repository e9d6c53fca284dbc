package service

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

type FournirService interface {
	List(ctx context.Context) ([]model.Fournir, error)
	Create(ctx context.Context, req dto.FournirRequest) (*model.Fournir, error)
	Rekey(ctx context.Context, old model.Fournir, req dto.FournirUpdateRequest) error
	Delete(ctx context.Context, key model.Fournir) error
}

type fournirService struct {
	repo repository.FournirRepository
}

func NewFournirService(repo repository.FournirRepository) FournirService {
	return &fournirService{repo: repo}
}

func (s *fournirService) List(ctx context.Context) ([]model.Fournir, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("Fournir", err)
}

func (s *fournirService) Create(ctx context.Context, req dto.FournirRequest) (*model.Fournir, error) {
	f := &model.Fournir{IDProduit: req.IDProduit, IDFournisseur: req.IDFournisseur}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, storeError("Fournir", err)
	}
	return f, nil
}

func (s *fournirService) Rekey(ctx context.Context, old model.Fournir, req dto.FournirUpdateRequest) error {
	next := model.Fournir{IDProduit: req.NewIDProduit, IDFournisseur: req.NewIDFournisseur}
	return storeError("Fournir", s.repo.Rekey(ctx, old, next))
}

func (s *fournirService) Delete(ctx context.Context, key model.Fournir) error {
	return deleteError("Fournir", s.repo.Delete(ctx, key))
}
