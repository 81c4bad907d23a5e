package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema migrations for the slot table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// SlotStore implements repository.SlotStore as one row of cart_slots.
type SlotStore struct {
	pool database.DBTX
	key  string
}

// NewSlotStore creates a PostgreSQL-backed slot.
func NewSlotStore(pool database.DBTX, key string) *SlotStore {
	return &SlotStore{pool: pool, key: key}
}

// Get reads the payload for the slot key.
func (s *SlotStore) Get(ctx context.Context) ([]byte, error) {
	query := `SELECT payload FROM cart_slots WHERE slot_key = $1`

	ctx, end := database.TraceQuery(ctx, "GetCartSlot", query, pgx.ErrNoRows)
	var payload []byte
	err := s.pool.QueryRow(ctx, query, s.key).Scan(&payload)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("cart slot", s.key)
		}
		return nil, fmt.Errorf("get cart slot: %w", err)
	}
	return payload, nil
}

// Save upserts the payload for the slot key.
func (s *SlotStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO cart_slots (slot_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`

	ctx, end := database.TraceQuery(ctx, "SaveCartSlot", query)
	_, err := s.pool.Exec(ctx, query, s.key, data)
	end(err)
	if err != nil {
		return fmt.Errorf("save cart slot: %w", err)
	}
	return nil
}

// Delete removes the row for the slot key.
func (s *SlotStore) Delete(ctx context.Context) error {
	query := `DELETE FROM cart_slots WHERE slot_key = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteCartSlot", query)
	_, err := s.pool.Exec(ctx, query, s.key)
	end(err)
	if err != nil {
		return fmt.Errorf("delete cart slot: %w", err)
	}
	return nil
}
