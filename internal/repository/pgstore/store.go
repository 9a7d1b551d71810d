package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"upasana-backend/config"
	"upasana-backend/internal/domain"
)

// NewPgxPool creates a pgx connection pool from config and verifies it.
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// collectionStore persists line item collections as one jsonb row per key.
// Writes are last-write-wins; two tabs sharing a session cookie will race and
// the later write sticks, which matches the single-tab model the cart assumes.
type collectionStore struct {
	db *pgxpool.Pool
}

func NewCollectionStore(db *pgxpool.Pool) domain.CollectionStore {
	return &collectionStore{db: db}
}

// Migrate creates the backing table. Called once at startup; the schema is a
// single key/jsonb pair so there is nothing to version yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cart_collections (
			key        text PRIMARY KEY,
			items      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

func (s *collectionStore) LoadCollection(ctx context.Context, key string) ([]domain.LineItem, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT items FROM cart_collections WHERE key = $1`, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", key, err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	return items, nil
}

func (s *collectionStore) SaveCollection(ctx context.Context, key string, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO cart_collections (key, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		key, raw)
	if err != nil {
		return fmt.Errorf("save collection %s: %w", key, err)
	}
	return nil
}
