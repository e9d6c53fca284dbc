package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func ligne(idProduit int64, qty int, prix string) dto.LigneCommandeAutoRequest {
	return dto.LigneCommandeAutoRequest{
		IDProduit:        idProduit,
		QuantiteCommande: qty,
		PrixUnitaire:     decimal.RequireFromString(prix),
	}
}

func commandeAuto(date string, idClient int64, lignes ...dto.LigneCommandeAutoRequest) dto.CommandeAutoRequest {
	return dto.CommandeAutoRequest{DateCommande: date, IDClient: idClient, Lignes: lignes}
}

func buildPlacementSvc(store *memStore, opts service.PlacementOptions) (service.CommandeService, *stubCache, *stubNotifier) {
	cache := newStubCache()
	notifier := &stubNotifier{}
	svc := service.NewCommandeService(newStubCommandeRepo(), store, cache, notifier, opts)
	return svc, cache, notifier
}

var fastRetry = service.PlacementOptions{
	Timeout:    time.Second,
	MaxRetries: 2,
	BaseDelay:  time.Millisecond,
	MaxDelay:   2 * time.Millisecond,
}

// ── Scenarios ─────────────────────────────────────────────────────────────────

func TestPlacerCommande_Success_DecrementsStock(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	svc, cache, notifier := buildPlacementSvc(store, fastRetry)

	res, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 3, "9.99")))
	require.NoError(t, err)
	assert.Equal(t, 1, res.NbLignes)
	assert.Equal(t, 1, res.Attempts)
	assert.NotZero(t, res.IDCommande)

	stock, nbCommandes, nbLignes := store.snapshot()
	assert.Equal(t, 7, stock[1])
	assert.Equal(t, 1, nbCommandes)
	assert.Equal(t, 1, nbLignes)

	l := store.lignes[0]
	assert.Equal(t, res.IDCommande, l.IDCommande)
	assert.Equal(t, 3, l.QuantiteCommande)
	assert.True(t, decimal.RequireFromString("9.99").Equal(l.PrixUnitaire))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), store.commandes[0].DateCommande)

	assert.Equal(t, 1, cache.bumps, "stats cache must be invalidated after commit")
	assert.Equal(t, []int64{res.IDCommande}, notifier.ids)
}

func TestPlacerCommande_InsufficientStock_RollsBackEarlierLines(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10, 2: 3}, 1)
	svc, cache, notifier := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(),
		commandeAuto("2024-05-01", 1, ligne(1, 2, "4.90"), ligne(2, 5, "19.99")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInsufficientStock))

	var pe *service.PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, int64(2), pe.ProduitID)
	assert.Equal(t, "Not enough stock for product with id 2", service.Message(err, ""))

	stock, nbCommandes, nbLignes := store.snapshot()
	assert.Equal(t, 10, stock[1], "line 0 decrement must be rolled back")
	assert.Equal(t, 3, stock[2])
	assert.Zero(t, nbCommandes)
	assert.Zero(t, nbLignes)
	assert.Zero(t, cache.bumps)
	assert.Empty(t, notifier.ids)
}

func TestPlacerCommande_UnknownProduct(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(),
		commandeAuto("2024-05-01", 1, ligne(1, 1, "4.90"), ligne(999, 1, "1.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotFound))
	assert.Equal(t, "Product with id 999 not found", service.Message(err, ""))

	stock, nbCommandes, nbLignes := store.snapshot()
	assert.Equal(t, 10, stock[1])
	assert.Zero(t, nbCommandes)
	assert.Zero(t, nbLignes)
}

func TestPlacerCommande_UnknownClient(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 42, ligne(1, 1, "4.90")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotFound))
	assert.Equal(t, "Client with id 42 not found", service.Message(err, ""))

	_, nbCommandes, _ := store.snapshot()
	assert.Zero(t, nbCommandes)
}

func TestPlacerCommande_ExactStockReachesZero(t *testing.T) {
	store := newMemStore(map[int64]int{4: 3}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(4, 3, "9.50")))
	require.NoError(t, err)

	stock, _, _ := store.snapshot()
	assert.Equal(t, 0, stock[4])
}

func TestPlacerCommande_SameProductTwiceSeesOwnDecrement(t *testing.T) {
	store := newMemStore(map[int64]int{1: 5}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(),
		commandeAuto("2024-05-01", 1, ligne(1, 3, "1.00"), ligne(1, 3, "1.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInsufficientStock))

	stock, _, _ := store.snapshot()
	assert.Equal(t, 5, stock[1])
}

// ── Validation ────────────────────────────────────────────────────────────────

func TestPlacerCommande_ValidationNeverTouchesStore(t *testing.T) {
	const (
		missing     = `Missing required parameters "date_commande", "idClient" and/or "lignescommandes"`
		missingLine = "Missing required parameters in one of the lignescommandes"
	)

	cases := []struct {
		name string
		req  dto.CommandeAutoRequest
		msg  string
		line int
	}{
		{"no date", commandeAuto("", 1, ligne(1, 1, "1.00")), missing, -1},
		{"no client", commandeAuto("2024-05-01", 0, ligne(1, 1, "1.00")), missing, -1},
		{"nil lines", commandeAuto("2024-05-01", 1), missing, -1},
		{"empty lines", dto.CommandeAutoRequest{DateCommande: "2024-05-01", IDClient: 1, Lignes: []dto.LigneCommandeAutoRequest{}}, missing, -1},
		{"bad date", commandeAuto("01/05/2024", 1, ligne(1, 1, "1.00")), `Invalid "date_commande", expected YYYY-MM-DD`, -1},
		{"zero quantity", commandeAuto("2024-05-01", 1, ligne(1, 0, "1.00")), missingLine, 0},
		{"negative quantity", commandeAuto("2024-05-01", 1, ligne(1, 1, "1.00"), ligne(2, -4, "1.00")), missingLine, 1},
		{"zero price", commandeAuto("2024-05-01", 1, ligne(1, 1, "0")), missingLine, 0},
		{"missing product", commandeAuto("2024-05-01", 1, ligne(0, 1, "1.00")), missingLine, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(map[int64]int{1: 10, 2: 10}, 1)
			svc, _, _ := buildPlacementSvc(store, fastRetry)

			_, err := svc.PlacerCommande(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, service.ErrValidation))
			assert.Equal(t, tc.msg, service.Message(err, ""))

			var pe *service.PlacementError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.line, pe.Line)
			assert.Zero(t, store.txs, "validation failures must not open a transaction")
		})
	}
}

func TestPlacerCommande_AcceptsRFC3339Date(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01T15:04:05+02:00", 1, ligne(1, 1, "1.00")))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), store.commandes[0].DateCommande)
}

// ── Properties ────────────────────────────────────────────────────────────────

func TestPlacerCommande_RejectionIsIdempotent(t *testing.T) {
	store := newMemStore(map[int64]int{1: 2}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)
	req := commandeAuto("2024-05-01", 1, ligne(1, 5, "1.00"))

	for i := 0; i < 3; i++ {
		_, err := svc.PlacerCommande(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInsufficientStock))
	}

	stock, nbCommandes, nbLignes := store.snapshot()
	assert.Equal(t, 2, stock[1])
	assert.Zero(t, nbCommandes)
	assert.Zero(t, nbLignes)
}

func TestPlacerCommande_StockConservation(t *testing.T) {
	initial := map[int64]int{1: 50, 2: 20, 3: 7}
	store := newMemStore(map[int64]int{1: 50, 2: 20, 3: 7}, 1, 2)
	svc, _, _ := buildPlacementSvc(store, fastRetry)
	ctx := context.Background()

	reqs := []dto.CommandeAutoRequest{
		commandeAuto("2024-05-01", 1, ligne(1, 10, "4.90"), ligne(2, 5, "0.45")),
		commandeAuto("2024-05-02", 2, ligne(3, 8, "19.99")), // rejected
		commandeAuto("2024-05-02", 2, ligne(3, 7, "19.99"), ligne(1, 1, "4.90")),
		commandeAuto("2024-05-03", 1, ligne(2, 15, "0.45"), ligne(2, 1, "0.45")), // rejected
		commandeAuto("2024-05-03", 1, ligne(2, 15, "0.45")),
	}
	for _, r := range reqs {
		_, _ = svc.PlacerCommande(ctx, r)
	}

	stock, nbCommandes, _ := store.snapshot()
	assert.Equal(t, 3, nbCommandes)

	sold := map[int64]int{}
	perCommande := map[int64]int{}
	for _, l := range store.lignes {
		sold[l.IDProduit] += l.QuantiteCommande
		perCommande[l.IDCommande]++
	}
	for id, qty := range initial {
		assert.Equal(t, qty-sold[id], stock[id], "product %d", id)
		assert.GreaterOrEqual(t, stock[id], 0)
	}
	assert.Equal(t, map[int64]int{1: 2, 4: 2, 7: 1}, perCommande)
}

func TestPlacerCommande_ConcurrentLastUnits(t *testing.T) {
	store := newMemStore(map[int64]int{1: 3}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	const n = 10
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 1, "9.50")))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, service.ErrInsufficientStock):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, n-3, rejected)
	stock, nbCommandes, _ := store.snapshot()
	assert.Equal(t, 0, stock[1])
	assert.Equal(t, 3, nbCommandes)
}

// ── Store failures ────────────────────────────────────────────────────────────

func TestPlacerCommande_RetriesDeadlock(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	store.txErrs = []error{&pgconn.PgError{Code: "40P01", Message: "deadlock detected"}}
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	res, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 2, "1.00")))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 2, store.txs)

	stock, nbCommandes, _ := store.snapshot()
	assert.Equal(t, 8, stock[1])
	assert.Equal(t, 1, nbCommandes)
}

func TestPlacerCommande_RetriesExhausted(t *testing.T) {
	serialization := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	store := newMemStore(map[int64]int{1: 10}, 1)
	store.txErrs = []error{serialization, serialization}
	opts := fastRetry
	opts.MaxRetries = 1
	svc, _, notifier := buildPlacementSvc(store, opts)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 2, "1.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTransient))
	assert.Equal(t, 2, store.txs)
	assert.Empty(t, notifier.ids)
}

func TestPlacerCommande_OtherStoreErrorsAreNotRetried(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	store.txErrs = []error{errBoom}
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 2, "1.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTransient))
	assert.True(t, errors.Is(err, errBoom))
	assert.Equal(t, "Service temporarily unavailable, please retry", service.Message(err, ""))
	assert.Equal(t, 1, store.txs)
}

func TestPlacerCommande_OutOfRangeValueIsBadRequest(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10, 2: 10}, 1)
	store.ligneErrs = map[int64]error{2: fmt.Errorf("%w: numeric field overflow", repository.ErrInvalidValue)}
	svc, cache, notifier := buildPlacementSvc(store, fastRetry)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 2, "1.00"), ligne(2, 1, "99999999.995")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrValidation))
	assert.False(t, errors.Is(err, service.ErrTransient))
	assert.Equal(t, "Value out of range for product with id 2", service.Message(err, ""))

	var pe *service.PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)

	assert.Equal(t, 1, store.txs, "data errors are not retried")
	stock, nbCommandes, nbLignes := store.snapshot()
	assert.Equal(t, 10, stock[1])
	assert.Zero(t, nbCommandes)
	assert.Zero(t, nbLignes)
	assert.Zero(t, cache.bumps)
	assert.Empty(t, notifier.ids)
}

func TestPlacerCommande_RejectsValuesBeyondColumnRange(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	svc, _, _ := buildPlacementSvc(store, fastRetry)

	for _, l := range []dto.LigneCommandeAutoRequest{
		ligne(1, 1, "100000000"),
		ligne(1, 2147483648, "1.00"),
	} {
		_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, l))
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrValidation))
		assert.Equal(t, dto.MissingLigneAutoParams, service.Message(err, ""))
	}
	assert.Zero(t, store.txs)
}

func TestPlacerCommande_TimeoutRollsBack(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	store.block = true
	opts := fastRetry
	opts.Timeout = 20 * time.Millisecond
	svc, _, _ := buildPlacementSvc(store, opts)

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 2, "1.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTransient))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	stock, nbCommandes, _ := store.snapshot()
	assert.Equal(t, 10, stock[1])
	assert.Zero(t, nbCommandes)
}

func TestPlacerCommande_SideEffectFailuresDoNotFailPlacement(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	cache := newStubCache()
	cache.bumpErr = errBoom
	notifier := &stubNotifier{err: errBoom}
	svc := service.NewCommandeService(newStubCommandeRepo(), store, cache, notifier, fastRetry)

	res, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 1, "1.00")))
	require.NoError(t, err)
	assert.Equal(t, []int64{res.IDCommande}, notifier.ids)
}

func TestPlacerCommande_WorksWithoutCacheOrNotifier(t *testing.T) {
	store := newMemStore(map[int64]int{1: 10}, 1)
	svc := service.NewCommandeService(newStubCommandeRepo(), store, nil, nil, service.PlacementOptions{})

	_, err := svc.PlacerCommande(context.Background(), commandeAuto("2024-05-01", 1, ligne(1, 1, "1.00")))
	require.NoError(t, err)
}
