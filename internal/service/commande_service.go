package service

import (
	"context"
	"fmt"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

// CommandeService covers direct order CRUD and automatic order placement.
type CommandeService interface {
	List(ctx context.Context) ([]model.Commande, error)
	Get(ctx context.Context, id int64) (*model.Commande, error)
	Create(ctx context.Context, req dto.CommandeRequest) (*model.Commande, error)
	Update(ctx context.Context, id int64, req dto.CommandeRequest) error
	Delete(ctx context.Context, id int64) error

	// PlacerCommande creates an order with all its lines and decrements
	// stock, atomically. See placement.go.
	PlacerCommande(ctx context.Context, req dto.CommandeAutoRequest) (*dto.CommandeAutoResult, error)
}

// StatsCache is the part of the aggregate cache the services need.
type StatsCache interface {
	GetOrLoad(ctx context.Context, name string, dst interface{}, load func() error) error
	Bump(ctx context.Context) error
}

// CommandeNotifier receives committed orders for asynchronous confirmation.
type CommandeNotifier interface {
	NotifyCommandeConfirmee(ctx context.Context, idCommande int64) error
}

type commandeService struct {
	repo      repository.CommandeRepository
	placement repository.PlacementStore
	cache     StatsCache
	notifier  CommandeNotifier
	opts      PlacementOptions
}

// NewCommandeService wires the order service. cache and notifier may be nil.
func NewCommandeService(
	repo repository.CommandeRepository,
	placement repository.PlacementStore,
	cache StatsCache,
	notifier CommandeNotifier,
	opts PlacementOptions,
) CommandeService {
	return &commandeService{
		repo:      repo,
		placement: placement,
		cache:     cache,
		notifier:  notifier,
		opts:      opts.withDefaults(),
	}
}

func (s *commandeService) List(ctx context.Context) ([]model.Commande, error) {
	list, err := s.repo.List(ctx)
	return list, storeError("Commande", err)
}

func (s *commandeService) Get(ctx context.Context, id int64) (*model.Commande, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("Commande", err)
	}
	return c, nil
}

func (s *commandeService) Create(ctx context.Context, req dto.CommandeRequest) (*model.Commande, error) {
	date, err := parseDate(req.DateCommande)
	if err != nil {
		return nil, newError(ErrValidation, `Invalid "datecommande", expected YYYY-MM-DD`, err)
	}
	c := &model.Commande{DateCommande: date, IDClient: req.IDClient}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError("Commande", err)
	}
	s.invalidateStats(ctx)
	return c, nil
}

func (s *commandeService) Update(ctx context.Context, id int64, req dto.CommandeRequest) error {
	date, err := parseDate(req.DateCommande)
	if err != nil {
		return newError(ErrValidation, `Invalid "datecommande", expected YYYY-MM-DD`, err)
	}
	if err := s.repo.Update(ctx, &model.Commande{ID: id, DateCommande: date, IDClient: req.IDClient}); err != nil {
		return storeError("Commande", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *commandeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError("Commande", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *commandeService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		logCacheError(err)
	}
}

func lineMsg(format string, id int64) string { return fmt.Sprintf(format, id) }
