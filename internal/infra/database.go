package infra

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/EliasMeh/ExamenBDD/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewDatabase opens the shared GORM pool backed by pgx. Every request checks a
// connection out of this pool; a placement holds one for the whole transaction.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}

	return db, nil
}

// RunMigrations bootstraps the schema from the SQL files embedded in the binary.
// It uses its own short-lived connection: the golang-migrate postgres driver
// closes the *sql.DB it is given.
func RunMigrations(dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("migrations: open: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("migrations: driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("migrations: source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("migrations: init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrations: up: %w", err)
	}

	log.Info().Msg("schema migrations applied")
	return nil
}

// Seed loads a small demo data set when the catalogue is empty.
// Idempotent: a non-empty produits table means the seed already ran.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Table("produits").Count(&count).Error; err != nil {
		return fmt.Errorf("seed: count produits: %w", err)
	}
	if count > 0 {
		return nil
	}

	statements := []string{
		`INSERT INTO categories (nom) VALUES ('Papeterie'), ('Informatique'), ('Mobilier')`,
		`INSERT INTO fournisseurs (nom, codepostal) VALUES ('Bureau Plus', '75011'), ('Tech Distrib', '69003')`,
		`INSERT INTO produits (nomreference, quantitestock, prixunitaire, idcategorie) VALUES
			('Ramette A4', 120, 4.90, 1),
			('Stylo bille bleu', 500, 0.45, 1),
			('Clavier USB', 15, 19.99, 2),
			('Souris optique', 3, 9.50, 2),
			('Chaise de bureau', 8, 89.00, 3)`,
		`INSERT INTO fournir (idproduit, idfournisseur) VALUES (1, 1), (2, 1), (3, 2), (4, 2), (5, 1)`,
		`INSERT INTO clients (nomclient, prenomclient, emailclient, adresseclient, codepostalclient) VALUES
			('Martin', 'Claire', 'claire.martin@example.com', '12 rue des Lilas', '75020'),
			('Bernard', 'Hugo', 'hugo.bernard@example.com', '3 place Bellecour', '69002')`,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		log.Info().Msg("demo data seeded")
		return nil
	})
}
