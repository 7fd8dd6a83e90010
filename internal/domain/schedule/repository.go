package schedule

import "context"

// Repository defines the persistence interface for schedule blocks.
type Repository interface {
	// Create persists a new block.
	// Returns ErrBlockAlreadyExists if the ID is taken.
	Create(ctx context.Context, block *Block) error

	// GetByID retrieves a block by its ID.
	// Returns ErrBlockNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*Block, error)

	// Update persists changes to an existing block.
	// Returns ErrBlockNotFound if it does not exist.
	Update(ctx context.Context, block *Block) error

	// Delete removes a block by its ID.
	// Returns ErrBlockNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// ListByUser returns all blocks owned by the user, ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]*Block, error)
}
