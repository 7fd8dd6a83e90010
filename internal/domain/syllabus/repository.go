package syllabus

import "context"

// Repository defines the persistence interface for syllabus modules.
type Repository interface {
	// Create persists a new module.
	// Returns ErrModuleAlreadyExists if the ID is taken.
	Create(ctx context.Context, module *Module) error

	// GetByID retrieves a module by its ID.
	// Returns ErrModuleNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*Module, error)

	// Update persists changes to an existing module.
	// Returns ErrModuleNotFound if it does not exist.
	Update(ctx context.Context, module *Module) error

	// Delete removes a module by its ID.
	// Returns ErrModuleNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// ListByUser returns all modules owned by the user, ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]*Module, error)

	// DistinctUsers returns the IDs of all users that own at least one
	// module. Used by the revision scan job to enumerate recipients.
	DistinctUsers(ctx context.Context) ([]string, error)
}
