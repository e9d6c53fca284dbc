package service

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

// CategorieService defines business operations for product categories.
type CategorieService interface {
	List(ctx context.Context) ([]model.Categorie, error)
	Get(ctx context.Context, id int64) (*model.Categorie, error)
	Create(ctx context.Context, req dto.CategorieRequest) (*model.Categorie, error)
	Update(ctx context.Context, id int64, req dto.CategorieRequest) error
	Delete(ctx context.Context, id int64) error
}

type categorieService struct {
	repo repository.CategorieRepository
}

func NewCategorieService(repo repository.CategorieRepository) CategorieService {
	return &categorieService{repo: repo}
}

func (s *categorieService) List(ctx context.Context) ([]model.Categorie, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("Categorie", err)
}

func (s *categorieService) Get(ctx context.Context, id int64) (*model.Categorie, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("Categorie", err)
	}
	return c, nil
}

func (s *categorieService) Create(ctx context.Context, req dto.CategorieRequest) (*model.Categorie, error) {
	c := &model.Categorie{Nom: req.Nom}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError("Categorie", err)
	}
	return c, nil
}

func (s *categorieService) Update(ctx context.Context, id int64, req dto.CategorieRequest) error {
	return storeError("Categorie", s.repo.Update(ctx, &model.Categorie{ID: id, Nom: req.Nom}))
}

func (s *categorieService) Delete(ctx context.Context, id int64) error {
	return deleteError("Categorie", s.repo.Delete(ctx, id))
}
