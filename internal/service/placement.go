package service

import (
	"context"
	"errors"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/infra"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidDate     = `Invalid "date_commande", expected YYYY-MM-DD`
	msgProduitNotFound = "Product with id %d not found"
	msgClientNotFound  = "Client with id %d not found"
	msgNotEnoughStock  = "Not enough stock for product with id %d"
	msgInvalidCommande = "Commande has a value out of range"
	msgInvalidLigne    = "Value out of range for product with id %d"

	// MsgCommandeCreated is returned to the client on a committed placement.
	MsgCommandeCreated = "Commande and lignescommandes created successfully"
)

// PlacementOptions bounds one placement.
type PlacementOptions struct {
	// Timeout applies to each transaction attempt.
	Timeout time.Duration
	// MaxRetries is the number of replays after a deadlock or serialization failure.
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func (o PlacementOptions) withDefaults() PlacementOptions {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = 20 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 500 * time.Millisecond
	}
	return o
}

// ── PlacerCommande ────────────────────────────────────────────────────────────
//   1. Validate the whole request (no store access on failure)
//   2. BEGIN TX: insert commande
//   3. For each line, in order: SELECT ... FOR UPDATE, check, UPDATE stock, insert ligne
//   4. COMMIT, or ROLLBACK on the first error
//   5. Replay on deadlock / serialization failure, with backoff
//   6. (best effort) bump stats cache, enqueue confirmation

func (s *commandeService) PlacerCommande(ctx context.Context, req dto.CommandeAutoRequest) (*dto.CommandeAutoResult, error) {
	date, err := validatePlacement(req)
	if err != nil {
		log.Warn().Err(err).Msg("commandeauto: rejected request")
		return nil, err
	}

	var (
		id      int64
		attempt int
	)
	for attempt = 1; ; attempt++ {
		id, err = s.placeOnce(ctx, date, req)
		if err == nil {
			break
		}

		var pe *PlacementError
		if errors.As(err, &pe) {
			log.Warn().
				Int64("idclient", req.IDClient).
				Int("line", pe.Line).
				Int64("idproduit", pe.ProduitID).
				Str("reason", pe.Msg).
				Msg("commandeauto: rolled back")
			return nil, pe
		}

		if !isRetryable(err) || attempt > s.opts.MaxRetries || ctx.Err() != nil {
			log.Error().Err(err).Int("attempt", attempt).Msg("commandeauto: store failure")
			return nil, transient(err)
		}

		delay := infra.Backoff(s.opts.BaseDelay, s.opts.MaxDelay, attempt-1, infra.DefaultJitter)
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("commandeauto: retrying transaction")
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, transient(ctx.Err())
		}
	}

	log.Info().
		Int64("idcommande", id).
		Int("lignes", len(req.Lignes)).
		Int("attempts", attempt).
		Msg("commandeauto: committed")

	s.afterCommit(ctx, id)
	return &dto.CommandeAutoResult{IDCommande: id, NbLignes: len(req.Lignes), Attempts: attempt}, nil
}

func validatePlacement(req dto.CommandeAutoRequest) (time.Time, error) {
	if err := dto.Validate(req); err != nil {
		return time.Time{}, &PlacementError{Kind: ErrValidation, Line: -1, Msg: dto.MissingCommandeAutoParams, Err: err}
	}
	date, err := parseDate(req.DateCommande)
	if err != nil {
		return time.Time{}, &PlacementError{Kind: ErrValidation, Line: -1, Msg: msgInvalidDate, Err: err}
	}
	for i, l := range req.Lignes {
		if err := dto.Validate(l); err != nil {
			return time.Time{}, &PlacementError{Kind: ErrValidation, Line: i, ProduitID: l.IDProduit, Msg: dto.MissingLigneAutoParams, Err: err}
		}
	}
	return date, nil
}

// placeOnce runs one transaction attempt under the placement timeout.
func (s *commandeService) placeOnce(ctx context.Context, date time.Time, req dto.CommandeAutoRequest) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var id int64
	err := s.placement.InTx(ctx, func(tx repository.PlacementTx) error {
		c := &model.Commande{DateCommande: date, IDClient: req.IDClient}
		if err := tx.InsertCommande(c); err != nil {
			switch {
			case errors.Is(err, repository.ErrInvalidReference):
				return &PlacementError{Kind: ErrNotFound, Line: -1, Msg: lineMsg(msgClientNotFound, req.IDClient), Err: err}
			case errors.Is(err, repository.ErrInvalidValue):
				return &PlacementError{Kind: ErrValidation, Line: -1, Msg: msgInvalidCommande, Err: err}
			}
			return err
		}

		for i, l := range req.Lignes {
			stock, err := tx.LockStock(l.IDProduit)
			if errors.Is(err, repository.ErrNotFound) {
				return &PlacementError{Kind: ErrNotFound, Line: i, ProduitID: l.IDProduit, Msg: lineMsg(msgProduitNotFound, l.IDProduit)}
			}
			if err != nil {
				return err
			}

			newStock := stock - l.QuantiteCommande
			if newStock < 0 {
				return &PlacementError{Kind: ErrInsufficientStock, Line: i, ProduitID: l.IDProduit, Msg: lineMsg(msgNotEnoughStock, l.IDProduit)}
			}
			if err := tx.SetStock(l.IDProduit, newStock); err != nil {
				return ligneValueError(i, l.IDProduit, err)
			}

			ligne := &model.LigneCommande{
				IDCommande:       c.ID,
				IDProduit:        l.IDProduit,
				QuantiteCommande: l.QuantiteCommande,
				PrixUnitaire:     l.PrixUnitaire,
			}
			if err := tx.InsertLigne(ligne); err != nil {
				return ligneValueError(i, l.IDProduit, err)
			}
		}

		id = c.ID
		return nil
	})
	return id, err
}

// ligneValueError rejects a line the database refused as out of range.
func ligneValueError(line int, idProduit int64, err error) error {
	if errors.Is(err, repository.ErrInvalidValue) {
		return &PlacementError{Kind: ErrValidation, Line: line, ProduitID: idProduit, Msg: lineMsg(msgInvalidLigne, idProduit), Err: err}
	}
	return err
}

// afterCommit never changes the outcome of a committed placement.
func (s *commandeService) afterCommit(ctx context.Context, id int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	s.invalidateStats(ctx)
	if s.notifier != nil {
		if err := s.notifier.NotifyCommandeConfirmee(ctx, id); err != nil {
			log.Warn().Err(err).Int64("idcommande", id).Msg("commandeauto: confirmation not enqueued")
		}
	}
}

func logCacheError(err error) {
	log.Warn().Err(err).Msg("stats cache: invalidation failed")
}
