package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// positionRepository implements domain.PositionRepository on the Store
type positionRepository struct {
	store *Store
}

// Create stores a new position at the end of the ledger
func (r *positionRepository) Create(ctx context.Context, position *domain.Position) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Store a copy so callers cannot mutate ledger state through the
	// pointer they passed in.
	stored := *position
	r.store.positions = append(r.store.positions, &stored)
	r.store.positionByID[stored.ID] = &stored
	return nil
}

// GetByID retrieves a position by its ID
func (r *positionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	position, ok := r.store.positionByID[id]
	if !ok {
		return nil, domain.ErrPositionNotFound
	}

	copied := *position
	return &copied, nil
}

// List retrieves positions matching the filter in insertion order
func (r *positionRepository) List(ctx context.Context, filter domain.PositionFilter) ([]*domain.Position, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Position, 0, len(r.store.positions))
	for _, position := range r.store.positions {
		if !filter.Matches(position) {
			continue
		}
		copied := *position
		result = append(result, &copied)
	}
	return result, nil
}

// Remove deletes a position from the ledger
func (r *positionRepository) Remove(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.positionByID[id]; !ok {
		return domain.ErrPositionNotFound
	}
	delete(r.store.positionByID, id)

	for i, position := range r.store.positions {
		if position.ID == id {
			r.store.positions = append(r.store.positions[:i], r.store.positions[i+1:]...)
			break
		}
	}
	return nil
}
