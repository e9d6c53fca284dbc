package service

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

type FournisseurService interface {
	List(ctx context.Context) ([]model.Fournisseur, error)
	Get(ctx context.Context, id int64) (*model.Fournisseur, error)
	Create(ctx context.Context, req dto.FournisseurRequest) (*model.Fournisseur, error)
	Update(ctx context.Context, id int64, req dto.FournisseurRequest) error
	Delete(ctx context.Context, id int64) error
}

type fournisseurService struct {
	repo repository.FournisseurRepository
}

func NewFournisseurService(repo repository.FournisseurRepository) FournisseurService {
	return &fournisseurService{repo: repo}
}

func (s *fournisseurService) List(ctx context.Context) ([]model.Fournisseur, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("Fournisseur", err)
}

func (s *fournisseurService) Get(ctx context.Context, id int64) (*model.Fournisseur, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("Fournisseur", err)
	}
	return f, nil
}

func (s *fournisseurService) Create(ctx context.Context, req dto.FournisseurRequest) (*model.Fournisseur, error) {
	f := &model.Fournisseur{Nom: req.Nom, CodePostal: req.CodePostal}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, storeError("Fournisseur", err)
	}
	return f, nil
}

func (s *fournisseurService) Update(ctx context.Context, id int64, req dto.FournisseurRequest) error {
	return storeError("Fournisseur", s.repo.Update(ctx, &model.Fournisseur{ID: id, Nom: req.Nom, CodePostal: req.CodePostal}))
}

func (s *fournisseurService) Delete(ctx context.Context, id int64) error {
	return deleteError("Fournisseur", s.repo.Delete(ctx, id))
}
