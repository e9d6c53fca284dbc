package router

import (
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/config"
	"github.com/EliasMeh/ExamenBDD/internal/handler"
	"github.com/EliasMeh/ExamenBDD/internal/infra"
	"github.com/EliasMeh/ExamenBDD/internal/middleware"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
	"github.com/EliasMeh/ExamenBDD/internal/service"
	"github.com/EliasMeh/ExamenBDD/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb and dispatcher may be nil: the stats cache and order confirmations are
// then disabled.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	statsCache := infra.NewCache(rdb, "stats", cfg.StatsCacheTTL)

	// ── Repositories ─────────────────────────────────────────────────────────
	fournisseurRepo := repository.NewFournisseurRepository(db)
	categorieRepo := repository.NewCategorieRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	fournirRepo := repository.NewFournirRepository(db)
	clientRepo := repository.NewClientRepository(db)
	commandeRepo := repository.NewCommandeRepository(db)
	ligneRepo := repository.NewLigneCommandeRepository(db)
	placementStore := repository.NewPlacementStore(db)
	statsRepo := repository.NewStatsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var notifier service.CommandeNotifier
	if dispatcher != nil {
		notifier = dispatcher
	}

	fournisseurSvc := service.NewFournisseurService(fournisseurRepo)
	categorieSvc := service.NewCategorieService(categorieRepo)
	produitSvc := service.NewProduitService(produitRepo, statsCache)
	fournirSvc := service.NewFournirService(fournirRepo)
	clientSvc := service.NewClientService(clientRepo)
	commandeSvc := service.NewCommandeService(commandeRepo, placementStore, statsCache, notifier, service.PlacementOptions{
		Timeout:    cfg.PlacementTimeout,
		MaxRetries: cfg.PlacementMaxRetries,
	})
	ligneSvc := service.NewLigneCommandeService(ligneRepo, statsCache)
	statsSvc := service.NewStatsService(statsRepo, produitRepo, commandeRepo, statsCache, cfg.LowStockThreshold)

	// ── Handlers ─────────────────────────────────────────────────────────────
	fournisseursH := handler.NewFournisseursHandler(fournisseurSvc)
	categoriesH := handler.NewCategoriesHandler(categorieSvc)
	produitsH := handler.NewProduitsHandler(produitSvc)
	fournirH := handler.NewFournirHandler(fournirSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	commandesH := handler.NewCommandesHandler(commandeSvc)
	lignesH := handler.NewLignesCommandesHandler(ligneSvc)
	commandeAutoH := handler.NewCommandeAutoHandler(commandeSvc)
	statsH := handler.NewStatsHandler(statsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	fournisseurs := r.Group("/fournisseurs")
	{
		fournisseurs.GET("", fournisseursH.List)
		fournisseurs.GET("/:id", fournisseursH.Get)
		fournisseurs.POST("", fournisseursH.Create)
		fournisseurs.PUT("/:id", fournisseursH.Update)
		fournisseurs.DELETE("/:id", fournisseursH.Delete)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoriesH.List)
		categories.GET("/:id", categoriesH.Get)
		categories.POST("", categoriesH.Create)
		categories.PUT("/:id", categoriesH.Update)
		categories.DELETE("/:id", categoriesH.Delete)
	}

	produits := r.Group("/produits")
	{
		produits.GET("", produitsH.List)
		produits.GET("/stock-faible", statsH.StockFaible)
		produits.GET("/:id", produitsH.Get)
		produits.POST("", produitsH.Create)
		produits.PUT("/:id", produitsH.Update)
		produits.DELETE("/:id", produitsH.Delete)
	}

	// Composite key: the pair is the identity, PUT re-keys it.
	fournir := r.Group("/fournir")
	{
		fournir.GET("", fournirH.List)
		fournir.POST("", fournirH.Create)
		fournir.PUT("/:idproduit/:idfournisseur", fournirH.Update)
		fournir.DELETE("/:idproduit/:idfournisseur", fournirH.Delete)
	}

	clients := r.Group("/clients")
	{
		clients.GET("", clientsH.List)
		clients.GET("/:id", clientsH.Get)
		clients.POST("", clientsH.Create)
		clients.PUT("/:id", clientsH.Update)
		clients.DELETE("/:id", clientsH.Delete)
	}

	commandes := r.Group("/commandes")
	{
		commandes.GET("", commandesH.List)
		commandes.GET("/search", statsH.SearchCommandes)
		commandes.GET("/:id", commandesH.Get)
		commandes.POST("", commandesH.Create)
		commandes.PUT("/:id", commandesH.Update)
		commandes.DELETE("/:id", commandesH.Delete)
	}

	lignes := r.Group("/lignescommandes")
	{
		lignes.GET("", lignesH.List)
		lignes.GET("/:id", lignesH.Get)
		lignes.POST("", lignesH.Create)
		lignes.PUT("/:id", lignesH.Update)
		lignes.DELETE("/:id", lignesH.Delete)
	}

	r.POST("/commandeauto", commandeAutoH.Create)

	stats := r.Group("/stats")
	{
		stats.GET("/top-produits", statsH.TopProduits)
		stats.GET("/ventes-totales", statsH.VentesTotales)
	}

	return r
}
