package repository

import "context"

// SlotStore persists the raw bytes of the single cart slot.
type SlotStore interface {
	// Get returns the slot contents. An absent slot yields an error matching
	// apperrors.ErrNotFound.
	Get(ctx context.Context) ([]byte, error)

	// Save overwrites the slot.
	Save(ctx context.Context, data []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context) error
}
