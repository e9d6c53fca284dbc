package service

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, req dto.ClientRequest) (*model.Client, error)
	Update(ctx context.Context, id int64, req dto.ClientRequest) error
	Delete(ctx context.Context, id int64) error
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func clientFromRequest(id int64, req dto.ClientRequest) *model.Client {
	return &model.Client{
		ID:               id,
		NomClient:        req.NomClient,
		PrenomClient:     req.PrenomClient,
		EmailClient:      req.EmailClient,
		AdresseClient:    req.AdresseClient,
		CodePostalClient: req.CodePostalClient,
	}
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("Client", err)
}

func (s *clientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("Client", err)
	}
	return c, nil
}

func (s *clientService) Create(ctx context.Context, req dto.ClientRequest) (*model.Client, error) {
	c := clientFromRequest(0, req)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError("Client", err)
	}
	return c, nil
}

func (s *clientService) Update(ctx context.Context, id int64, req dto.ClientRequest) error {
	return storeError("Client", s.repo.Update(ctx, clientFromRequest(id, req)))
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	return deleteError("Client", s.repo.Delete(ctx, id))
}
