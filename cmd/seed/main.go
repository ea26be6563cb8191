package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tableside-pos/api/internal/config"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/enum"
	"github.com/tableside-pos/api/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// defaultSurcharges are created inactive so a fresh outlet charges nothing
// extra until a manager turns one on.
var defaultSurcharges = []struct {
	name string
	rate string
}{
	{"Sunday", "10"},
	{"Public holiday", "15"},
	{"Card fee", "1.5"},
}

func main() {
	// CLI flags
	outletName := flag.String("outlet", "", "Outlet name")
	name := flag.String("name", "", "Owner full name")
	pin := flag.String("pin", "", "Owner PIN")
	flag.Parse()

	// Fall back to environment variables, then defaults
	*outletName = firstNonEmpty(*outletName, os.Getenv("SEED_OUTLET"), "Main Street")
	*name = firstNonEmpty(*name, os.Getenv("SEED_NAME"), "Owner")
	*pin = firstNonEmpty(*pin, os.Getenv("SEED_PIN"))

	cfg := config.Load()
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if *pin == "" {
		*pin = "1234"
		log.Warn("using default PIN 1234, change it immediately in production")
	}

	if err := seed(context.Background(), cfg, log, *outletName, *name, *pin); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func seed(ctx context.Context, cfg *config.Config, log *zap.Logger, outletName, ownerName, pin string) error {
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Outlet, owner and surcharges are created together or not at all.
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	outletID, err := seedOutlet(ctx, tx, log, outletName)
	if err != nil {
		return fmt.Errorf("seed outlet: %w", err)
	}
	ownerID, err := seedOwner(ctx, tx, log, outletID, ownerName, pin)
	if err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}
	if err := seedSurcharges(ctx, database.New(tx), log, outletID); err != nil {
		return fmt.Errorf("seed surcharges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Info("seed completed",
		zap.Stringer("outlet_id", outletID),
		zap.Stringer("owner_id", ownerID),
	)
	return nil
}

// seedOutlet creates the outlet if it doesn't exist.
func seedOutlet(ctx context.Context, tx pgx.Tx, log *zap.Logger, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM outlets WHERE name = $1 AND is_active = true LIMIT 1`, name).Scan(&id)
	if err == nil {
		log.Info("outlet exists, skipping", zap.String("name", name), zap.Stringer("id", id))
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("check outlet: %w", err)
	}

	err = tx.QueryRow(ctx, `INSERT INTO outlets (name, is_active) VALUES ($1, true) RETURNING id`, name).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert outlet: %w", err)
	}
	log.Info("created outlet", zap.String("name", name), zap.Stringer("id", id))
	return id, nil
}

// seedOwner creates the outlet's owner if it doesn't exist.
func seedOwner(ctx context.Context, tx pgx.Tx, log *zap.Logger, outletID uuid.UUID, fullName, pin string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM employees WHERE outlet_id = $1 AND role = $2 LIMIT 1`,
		outletID, enum.UserRoleOwner,
	).Scan(&id)
	if err == nil {
		log.Info("owner exists, skipping", zap.Stringer("id", id))
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("check owner: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash pin: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO employees (outlet_id, full_name, role, pin_hash, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id
	`, outletID, fullName, enum.UserRoleOwner, string(hashed)).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert owner: %w", err)
	}
	log.Info("created owner", zap.String("name", fullName), zap.Stringer("id", id))
	return id, nil
}

// seedSurcharges adds the default surcharges that the outlet lacks.
func seedSurcharges(ctx context.Context, q *database.Queries, log *zap.Logger, outletID uuid.UUID) error {
	existing, err := q.ListSurcharges(ctx, outletID)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s.Name] = true
	}

	for _, s := range defaultSurcharges {
		if have[s.name] {
			continue
		}
		if _, err := q.CreateSurcharge(ctx, database.CreateSurchargeParams{
			OutletID: outletID,
			Name:     s.name,
			Rate:     database.Numeric(decimal.RequireFromString(s.rate)),
			IsActive: false,
		}); err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
		log.Info("created surcharge", zap.String("name", s.name), zap.String("rate", s.rate))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
