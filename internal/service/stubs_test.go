package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/EliasMeh/ExamenBDD/internal/model"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// memStore is an in-memory PlacementStore. A transaction works on a copy of
// the state and publishes it on commit. The store mutex is held for the whole
// transaction, which serializes placements the way row locks do.
type memStore struct {
	mu        sync.Mutex
	stock     map[int64]int
	clients   map[int64]bool
	commandes []model.Commande
	lignes    []model.LigneCommande
	nextID    int64

	// txErrs are returned by successive InTx calls before fn runs.
	txErrs []error
	// block makes LockStock wait for ctx cancellation.
	block bool
	// ligneErrs fail InsertLigne for the given products.
	ligneErrs map[int64]error
	txs   int
}

func newMemStore(stock map[int64]int, clients ...int64) *memStore {
	s := &memStore{stock: stock, clients: map[int64]bool{}}
	for _, c := range clients {
		s.clients[c] = true
	}
	return s
}

func (s *memStore) InTx(ctx context.Context, fn func(tx repository.PlacementTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs++
	if len(s.txErrs) > 0 {
		err := s.txErrs[0]
		s.txErrs = s.txErrs[1:]
		if err != nil {
			return err
		}
	}

	tx := &memTx{ctx: ctx, store: s, stock: make(map[int64]int, len(s.stock)), nextID: s.nextID}
	for k, v := range s.stock {
		tx.stock[k] = v
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.stock = tx.stock
	s.commandes = append(s.commandes, tx.commandes...)
	s.lignes = append(s.lignes, tx.lignes...)
	s.nextID = tx.nextID
	return nil
}

func (s *memStore) snapshot() (map[int64]int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stock := make(map[int64]int, len(s.stock))
	for k, v := range s.stock {
		stock[k] = v
	}
	return stock, len(s.commandes), len(s.lignes)
}

var _ repository.PlacementStore = (*memStore)(nil)

type memTx struct {
	ctx       context.Context
	store     *memStore
	stock     map[int64]int
	commandes []model.Commande
	lignes    []model.LigneCommande
	nextID    int64
}

func (t *memTx) InsertCommande(c *model.Commande) error {
	if !t.store.clients[c.IDClient] {
		return repository.ErrInvalidReference
	}
	t.nextID++
	c.ID = t.nextID
	t.commandes = append(t.commandes, *c)
	return nil
}

func (t *memTx) LockStock(id int64) (int, error) {
	if t.store.block {
		<-t.ctx.Done()
		return 0, t.ctx.Err()
	}
	stock, ok := t.stock[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return stock, nil
}

func (t *memTx) SetStock(id int64, stock int) error {
	t.stock[id] = stock
	return nil
}

func (t *memTx) InsertLigne(l *model.LigneCommande) error {
	if err := t.store.ligneErrs[l.IDProduit]; err != nil {
		return err
	}
	t.nextID++
	l.ID = t.nextID
	t.lignes = append(t.lignes, *l)
	return nil
}

// stubCache is an in-memory StatsCache storing JSON under versioned keys,
// like the Redis one. onLoad runs inside every load.
type stubCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	version int
	bumps   int
	hits    int
	bumpErr error
	onLoad  func()
}

func newStubCache() *stubCache { return &stubCache{data: map[string][]byte{}} }

func (c *stubCache) GetOrLoad(_ context.Context, name string, dst interface{}, load func() error) error {
	c.mu.Lock()
	key := fmt.Sprintf("v%d:%s", c.version, name)
	raw, ok := c.data[key]
	c.mu.Unlock()
	if ok && json.Unmarshal(raw, dst) == nil {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return nil
	}

	if c.onLoad != nil {
		c.onLoad()
	}
	if err := load(); err != nil {
		return err
	}
	raw, err := json.Marshal(dst)
	if err != nil {
		return nil
	}
	c.mu.Lock()
	c.data[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *stubCache) Bump(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumps++
	c.version++
	return c.bumpErr
}

// stubNotifier records confirmed orders.
type stubNotifier struct {
	mu  sync.Mutex
	ids []int64
	err error
}

func (n *stubNotifier) NotifyCommandeConfirmee(_ context.Context, id int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
	return n.err
}

// stubCommandeRepo is a map-backed CommandeRepository.
type stubCommandeRepo struct {
	commandes  map[int64]*model.Commande
	seq        int64
	lastSearch repository.CommandeFilter
}

func newStubCommandeRepo() *stubCommandeRepo {
	return &stubCommandeRepo{commandes: map[int64]*model.Commande{}}
}

func (r *stubCommandeRepo) List(context.Context) ([]model.Commande, error) {
	out := make([]model.Commande, 0, len(r.commandes))
	for _, c := range r.commandes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCommandeRepo) FindByID(_ context.Context, id int64) (*model.Commande, error) {
	c, ok := r.commandes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *stubCommandeRepo) FindWithLignes(ctx context.Context, id int64) (*model.Commande, error) {
	return r.FindByID(ctx, id)
}

func (r *stubCommandeRepo) Create(_ context.Context, c *model.Commande) error {
	r.seq++
	c.ID = r.seq
	r.commandes[c.ID] = c
	return nil
}

func (r *stubCommandeRepo) Update(_ context.Context, c *model.Commande) error {
	if _, ok := r.commandes[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.commandes[c.ID] = c
	return nil
}

func (r *stubCommandeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.commandes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.commandes, id)
	return nil
}

func (r *stubCommandeRepo) Search(_ context.Context, f repository.CommandeFilter) ([]model.Commande, error) {
	r.lastSearch = f
	var out []model.Commande
	for _, c := range r.commandes {
		if f.IDClient == 0 || c.IDClient == f.IDClient {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ repository.CommandeRepository = (*stubCommandeRepo)(nil)

// stubProduitRepo is a map-backed ProduitRepository.
type stubProduitRepo struct {
	produits  map[int64]*model.Produit
	seq       int64
	lastSeuil int
	deleteErr error
}

func newStubProduitRepo() *stubProduitRepo {
	return &stubProduitRepo{produits: map[int64]*model.Produit{}}
}

func (r *stubProduitRepo) seed(p model.Produit) {
	r.produits[p.ID] = &p
	if p.ID > r.seq {
		r.seq = p.ID
	}
}

func (r *stubProduitRepo) List(context.Context) ([]model.Produit, error) {
	out := make([]model.Produit, 0, len(r.produits))
	for _, p := range r.produits {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProduitRepo) FindByID(_ context.Context, id int64) (*model.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *stubProduitRepo) Create(_ context.Context, p *model.Produit) error {
	r.seq++
	p.ID = r.seq
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) Update(_ context.Context, p *model.Produit) error {
	if _, ok := r.produits[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.produits[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.produits, id)
	return nil
}

func (r *stubProduitRepo) StockFaible(_ context.Context, seuil int) ([]model.Produit, error) {
	r.lastSeuil = seuil
	var out []model.Produit
	for _, p := range r.produits {
		if p.QuantiteStock < seuil {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProduitRepository = (*stubProduitRepo)(nil)

var errBoom = errors.New("boom")
