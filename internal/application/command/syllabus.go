package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/internal/domain/syllabus"
	"github.com/studyhall/studyhall/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYLLABUS COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// SyllabusCommands mutates the syllabus module collection.
type SyllabusCommands struct {
	modules   syllabus.Repository
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewSyllabusCommands creates the syllabus command service.
func NewSyllabusCommands(modules syllabus.Repository, publisher shared.EventPublisher, log *logger.Logger) *SyllabusCommands {
	if log == nil {
		log = logger.Default()
	}
	return &SyllabusCommands{
		modules:   modules,
		publisher: publisher,
		log:       log.With(logger.Component("syllabus_commands")),
	}
}

// ModuleInput is the wire shape of a module mutation.
type ModuleInput struct {
	Title    string   `json:"title"`
	Course   string   `json:"course"`
	Topics   []string `json:"topics"`
	Strength float64  `json:"strength"`
}

// Create validates and persists a new module in the Pending state.
func (c *SyllabusCommands) Create(ctx context.Context, userID string, input ModuleInput) (*syllabus.Module, error) {
	module, err := syllabus.NewModule(syllabus.NewModuleParams{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    input.Title,
		Course:   input.Course,
		Topics:   input.Topics,
		Strength: input.Strength,
	})
	if err != nil {
		return nil, err
	}

	if err := c.modules.Create(ctx, module); err != nil {
		return nil, err
	}

	c.publishChanged(module.ID, userID, "created")
	c.log.Info("syllabus module created", logger.UserID(userID), logger.ModuleID(module.ID))
	return module, nil
}

// Update applies new descriptive fields to an existing module. Status is not
// touched here; Advance is the only status mutator.
func (c *SyllabusCommands) Update(ctx context.Context, userID, moduleID string, input ModuleInput) (*syllabus.Module, error) {
	module, err := c.ownedModule(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	if err := module.Apply(syllabus.NewModuleParams{
		Title:    input.Title,
		Course:   input.Course,
		Topics:   input.Topics,
		Strength: input.Strength,
	}); err != nil {
		return nil, err
	}

	if err := c.modules.Update(ctx, module); err != nil {
		return nil, err
	}

	c.publishChanged(moduleID, userID, "updated")
	return module, nil
}

// Delete removes a module.
func (c *SyllabusCommands) Delete(ctx context.Context, userID, moduleID string) error {
	if _, err := c.ownedModule(ctx, userID, moduleID); err != nil {
		return err
	}

	if err := c.modules.Delete(ctx, moduleID); err != nil {
		return err
	}

	c.publishChanged(moduleID, userID, "deleted")
	return nil
}

// Advance moves a module to its next lifecycle status and persists the
// result. The transition runs on a clone; a persistence failure leaves the
// stored module (and the caller's view of it) in the prior state.
func (c *SyllabusCommands) Advance(ctx context.Context, userID, moduleID string, now time.Time) (*syllabus.Module, error) {
	module, err := c.ownedModule(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	fromStatus := module.Status
	advanced := module.Clone()
	advanced.Advance(now)

	if err := c.modules.Update(ctx, advanced); err != nil {
		c.log.Warn("module advance rolled back",
			logger.ModuleID(moduleID),
			logger.String("from_status", string(fromStatus)),
			logger.Err(err),
		)
		return nil, err
	}

	if c.publisher != nil {
		event := shared.NewModuleAdvancedEvent(moduleID, userID, string(fromStatus), string(advanced.Status))
		if err := c.publisher.Publish(event); err != nil {
			c.log.Warn("failed to publish module advance", logger.Err(err))
		}
	}
	c.publishChanged(moduleID, userID, "updated")

	c.log.Info("syllabus module advanced",
		logger.UserID(userID),
		logger.ModuleID(moduleID),
		logger.String("from_status", string(fromStatus)),
		logger.String("to_status", string(advanced.Status)),
	)
	return advanced, nil
}

func (c *SyllabusCommands) ownedModule(ctx context.Context, userID, moduleID string) (*syllabus.Module, error) {
	module, err := c.modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.UserID != userID {
		return nil, syllabus.ErrModuleNotFound
	}
	return module, nil
}

func (c *SyllabusCommands) publishChanged(moduleID, userID, action string) {
	if c.publisher == nil {
		return
	}
	event := shared.NewCollectionChangedEvent(shared.EventSyllabusChanged, moduleID, userID, "syllabus", action)
	if err := c.publisher.Publish(event); err != nil {
		c.log.Warn("failed to publish syllabus change", logger.Err(err))
	}
}
