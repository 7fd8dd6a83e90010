package deadline

import "context"

// AssignmentRepository defines the persistence interface for assignments.
type AssignmentRepository interface {
	// Create persists a new assignment.
	// Returns ErrAlreadyExists if the ID is taken.
	Create(ctx context.Context, assignment *Assignment) error

	// GetByID retrieves an assignment by its ID.
	// Returns ErrAssignmentNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*Assignment, error)

	// Update persists changes to an existing assignment.
	// Returns ErrAssignmentNotFound if it does not exist.
	Update(ctx context.Context, assignment *Assignment) error

	// Delete removes an assignment by its ID.
	// Returns ErrAssignmentNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// ListByUser returns all assignments owned by the user, ordered by due date.
	ListByUser(ctx context.Context, userID string) ([]*Assignment, error)

	// DistinctUsers returns the IDs of all users that own at least one
	// assignment. Used by the digest job to enumerate recipients.
	DistinctUsers(ctx context.Context) ([]string, error)
}

// ExamRepository defines the persistence interface for exams.
type ExamRepository interface {
	// Create persists a new exam.
	// Returns ErrAlreadyExists if the ID is taken.
	Create(ctx context.Context, exam *Exam) error

	// GetByID retrieves an exam by its ID.
	// Returns ErrExamNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*Exam, error)

	// Update persists changes to an existing exam.
	// Returns ErrExamNotFound if it does not exist.
	Update(ctx context.Context, exam *Exam) error

	// Delete removes an exam by its ID.
	// Returns ErrExamNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// ListByUser returns all exams owned by the user, ordered by date.
	ListByUser(ctx context.Context, userID string) ([]*Exam, error)
}
