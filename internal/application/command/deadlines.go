package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEADLINE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// DeadlineCommands mutates the assignment and exam collections.
type DeadlineCommands struct {
	assignments deadline.AssignmentRepository
	exams       deadline.ExamRepository
	publisher   shared.EventPublisher
	log         *logger.Logger
}

// NewDeadlineCommands creates the deadline command service.
func NewDeadlineCommands(
	assignments deadline.AssignmentRepository,
	exams deadline.ExamRepository,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *DeadlineCommands {
	if log == nil {
		log = logger.Default()
	}
	return &DeadlineCommands{
		assignments: assignments,
		exams:       exams,
		publisher:   publisher,
		log:         log.With(logger.Component("deadline_commands")),
	}
}

// AssignmentInput is the wire shape of an assignment mutation.
type AssignmentInput struct {
	Title    string `json:"title"`
	Course   string `json:"course"`
	DueDate  string `json:"due_date"`
	Priority int    `json:"priority"`
	Status   string `json:"status"`
}

// ExamInput is the wire shape of an exam mutation.
type ExamInput struct {
	Title         string `json:"title"`
	Course        string `json:"course"`
	Date          string `json:"date"`
	Location      string `json:"location"`
	SyllabusNotes string `json:"syllabus_notes"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Assignments
// ─────────────────────────────────────────────────────────────────────────────

// CreateAssignment validates and persists a new assignment.
func (c *DeadlineCommands) CreateAssignment(ctx context.Context, userID string, input AssignmentInput) (*deadline.Assignment, error) {
	assignment, err := deadline.NewAssignment(deadline.NewAssignmentParams{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    input.Title,
		Course:   input.Course,
		DueDate:  input.DueDate,
		Priority: input.Priority,
		Status:   deadline.AssignmentStatus(input.Status),
	})
	if err != nil {
		return nil, err
	}

	if err := c.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	c.publishChanged(assignment.ID, userID, "assignments", "created")
	c.log.Info("assignment created", logger.UserID(userID), logger.String("assignment_id", assignment.ID))
	return assignment, nil
}

// UpdateAssignment applies new field values to an existing assignment.
func (c *DeadlineCommands) UpdateAssignment(ctx context.Context, userID, id string, input AssignmentInput) (*deadline.Assignment, error) {
	assignment, err := c.ownedAssignment(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := assignment.Apply(deadline.NewAssignmentParams{
		Title:    input.Title,
		Course:   input.Course,
		DueDate:  input.DueDate,
		Priority: input.Priority,
		Status:   deadline.AssignmentStatus(input.Status),
	}); err != nil {
		return nil, err
	}

	if err := c.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}

	c.publishChanged(id, userID, "assignments", "updated")
	return assignment, nil
}

// DeleteAssignment removes an assignment.
func (c *DeadlineCommands) DeleteAssignment(ctx context.Context, userID, id string) error {
	if _, err := c.ownedAssignment(ctx, userID, id); err != nil {
		return err
	}

	if err := c.assignments.Delete(ctx, id); err != nil {
		return err
	}

	c.publishChanged(id, userID, "assignments", "deleted")
	return nil
}

func (c *DeadlineCommands) ownedAssignment(ctx context.Context, userID, id string) (*deadline.Assignment, error) {
	assignment, err := c.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.UserID != userID {
		return nil, deadline.ErrAssignmentNotFound
	}
	return assignment, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Exams
// ─────────────────────────────────────────────────────────────────────────────

// CreateExam validates and persists a new exam.
func (c *DeadlineCommands) CreateExam(ctx context.Context, userID string, input ExamInput) (*deadline.Exam, error) {
	exam, err := deadline.NewExam(deadline.NewExamParams{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         input.Title,
		Course:        input.Course,
		Date:          input.Date,
		Location:      input.Location,
		SyllabusNotes: input.SyllabusNotes,
	})
	if err != nil {
		return nil, err
	}

	if err := c.exams.Create(ctx, exam); err != nil {
		return nil, err
	}

	c.publishChanged(exam.ID, userID, "exams", "created")
	c.log.Info("exam created", logger.UserID(userID), logger.String("exam_id", exam.ID))
	return exam, nil
}

// UpdateExam applies new field values to an existing exam.
func (c *DeadlineCommands) UpdateExam(ctx context.Context, userID, id string, input ExamInput) (*deadline.Exam, error) {
	exam, err := c.ownedExam(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := exam.Apply(deadline.NewExamParams{
		Title:         input.Title,
		Course:        input.Course,
		Date:          input.Date,
		Location:      input.Location,
		SyllabusNotes: input.SyllabusNotes,
	}); err != nil {
		return nil, err
	}

	if err := c.exams.Update(ctx, exam); err != nil {
		return nil, err
	}

	c.publishChanged(id, userID, "exams", "updated")
	return exam, nil
}

// DeleteExam removes an exam.
func (c *DeadlineCommands) DeleteExam(ctx context.Context, userID, id string) error {
	if _, err := c.ownedExam(ctx, userID, id); err != nil {
		return err
	}

	if err := c.exams.Delete(ctx, id); err != nil {
		return err
	}

	c.publishChanged(id, userID, "exams", "deleted")
	return nil
}

func (c *DeadlineCommands) ownedExam(ctx context.Context, userID, id string) (*deadline.Exam, error) {
	exam, err := c.exams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.UserID != userID {
		return nil, deadline.ErrExamNotFound
	}
	return exam, nil
}

func (c *DeadlineCommands) publishChanged(id, userID, collection, action string) {
	if c.publisher == nil {
		return
	}
	event := shared.NewCollectionChangedEvent(shared.EventDeadlineChanged, id, userID, collection, action)
	if err := c.publisher.Publish(event); err != nil {
		c.log.Warn("failed to publish deadline change", logger.Err(err))
	}
}
