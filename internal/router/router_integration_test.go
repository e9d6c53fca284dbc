//go:build integration

package router_test

// End-to-end tests through the full Gin engine, with real Postgres and Redis
// (testcontainers) and the demo seed.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/config"
	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/infra"
	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/router"
	"github.com/EliasMeh/ExamenBDD/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func errorOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	return body.Error
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("examenbdd_test"),
		tcPostgres.WithUsername("examen"),
		tcPostgres.WithPassword("examen"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                 "test",
		DatabaseURL:         pgURL,
		DBMaxOpenConns:      10,
		RedisURL:            rdURL,
		PlacementTimeout:    5 * time.Second,
		PlacementMaxRetries: 2,
		LowStockThreshold:   5,
		StatsCacheTTL:       time.Minute,
	}

	require.NoError(t, infra.RunMigrations(cfg.DatabaseURL))
	db, err := infra.NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, infra.Seed(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	// No pool consumes the queue here: confirmations just pile up in Redis.
	srv := httptest.NewServer(router.New(cfg, db, rdb, worker.NewDispatcher(rdb)))
	t.Cleanup(srv.Close)
	return srv
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_OrderLifecycle(t *testing.T) {
	srv := setupServer(t)
	const mars = "?date_debut=2030-03-01&date_fin=2030-03-31"

	resp := do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]any
	decodeJSON(t, resp, &health)
	assert.Equal(t, "connected", health["redis"])
	assert.Equal(t, true, health["ok"])

	// Prime the stats cache with an empty period.
	resp = do(t, srv, http.MethodGet, "/stats/ventes-totales"+mars, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ventes dto.VentesTotalesResponse
	decodeJSON(t, resp, &ventes)
	assert.True(t, ventes.Total.IsZero())
	assert.Zero(t, ventes.NombreCommandes)

	// Seeded product 4 ("Souris optique") has 3 units in stock.
	resp = do(t, srv, http.MethodPost, "/commandeauto", jsonBody(t, map[string]any{
		"date_commande": "2030-03-10",
		"idClient":      1,
		"lignescommandes": []map[string]any{
			{"idproduit": 4, "quantitecommande": 2, "prixunitaire": 9.5},
			{"idproduit": 1, "quantitecommande": 1, "prixunitaire": 4.9},
		},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CommandeAutoResponse
	decodeJSON(t, resp, &created)
	assert.Equal(t, 2, created.NbLignes)
	require.Positive(t, created.IDCommande)

	// The placement bumped the cache version: fresh aggregate.
	resp = do(t, srv, http.MethodGet, "/stats/ventes-totales"+mars, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &ventes)
	assert.True(t, ventes.Total.Equal(decimal.RequireFromString("23.9")), ventes.Total.String())
	assert.Equal(t, int64(1), ventes.NombreCommandes)
	require.NotNil(t, ventes.DateDebut)
	assert.Equal(t, "2030-03-01", *ventes.DateDebut)

	resp = do(t, srv, http.MethodGet, "/stats/top-produits"+mars+"&limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var top []dto.TopProduitResponse
	decodeJSON(t, resp, &top)
	require.Len(t, top, 1)
	assert.Equal(t, int64(4), top[0].IDProduit)

	// Only one unit left: the whole order is refused and nothing moves.
	resp = do(t, srv, http.MethodPost, "/commandeauto", jsonBody(t, map[string]any{
		"date_commande": "2030-03-11",
		"idClient":      2,
		"lignescommandes": []map[string]any{
			{"idproduit": 1, "quantitecommande": 1, "prixunitaire": 4.9},
			{"idproduit": 4, "quantitecommande": 2, "prixunitaire": 9.5},
		},
	}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Not enough stock for product with id 4", errorOf(t, resp))

	var p model.Produit
	resp = do(t, srv, http.MethodGet, "/produits/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &p)
	assert.Equal(t, 119, p.QuantiteStock)

	resp = do(t, srv, http.MethodGet, "/produits/stock-faible?seuil=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low []model.Produit
	decodeJSON(t, resp, &low)
	require.Len(t, low, 1)
	assert.Equal(t, int64(4), low[0].ID)
	assert.Equal(t, 1, low[0].QuantiteStock)

	resp = do(t, srv, http.MethodGet, "/commandes/search?idproduit=4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []model.Commande
	decodeJSON(t, resp, &found)
	require.Len(t, found, 1)
	assert.Equal(t, created.IDCommande, found[0].ID)

	// Unknown client on placement is a bad request, not a 404.
	resp = do(t, srv, http.MethodPost, "/commandeauto", jsonBody(t, map[string]any{
		"date_commande":   "2030-03-12",
		"idClient":        9999,
		"lignescommandes": []map[string]any{{"idproduit": 1, "quantitecommande": 1, "prixunitaire": 4.9}},
	}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Client with id 9999 not found", errorOf(t, resp))

	// Referenced rows cannot be deleted.
	resp = do(t, srv, http.MethodDelete, "/produits/4", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	path := fmt.Sprintf("/commandes/%d", created.IDCommande)
	resp = do(t, srv, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_CrudAndValidation(t *testing.T) {
	srv := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/categories", jsonBody(t, map[string]any{"nom": "Consommables"}))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []model.Categorie
	decodeJSON(t, resp, &cats)
	assert.Len(t, cats, 4)

	resp = do(t, srv, http.MethodPost, "/clients", jsonBody(t, map[string]any{
		"nomclient": "Petit", "prenomclient": "Jules", "emailclient": "jules-at-example.com",
		"adresseclient": "1 rue Haute", "codepostalclient": "44000",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email format", errorOf(t, resp))

	resp = do(t, srv, http.MethodPut, "/fournisseurs/999", jsonBody(t, map[string]any{"nom": "X", "codepostal": "75001"}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodPost, "/fournir", jsonBody(t, map[string]any{"idproduit": 1, "idfournisseur": 1}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "seeded pair")
	resp.Body.Close()

	resp = do(t, srv, http.MethodPut, "/fournir/1/1", jsonBody(t, map[string]any{"newIdproduit": 1, "newIdfournisseur": 2}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodDelete, "/fournir/1/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Beyond NUMERIC(10,2): a bad request, never a 503.
	resp = do(t, srv, http.MethodPost, "/commandeauto", jsonBody(t, map[string]any{
		"date_commande":   "2030-03-12",
		"idClient":        1,
		"lignescommandes": []map[string]any{{"idproduit": 1, "quantitecommande": 1, "prixunitaire": 1e9}},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodGet, "/stats/ventes-totales?date_debut=2030-03-31&date_fin=2030-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
