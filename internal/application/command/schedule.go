// Package command contains the write-side application services. Every
// mutation follows the same shape: validate and transform on a copy, persist,
// and only then publish the change event that invalidates derived views. A
// failed persist leaves both the store and the caller's view untouched.
package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleCommands mutates the schedule block collection.
type ScheduleCommands struct {
	blocks    schedule.Repository
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewScheduleCommands creates the schedule command service.
func NewScheduleCommands(blocks schedule.Repository, publisher shared.EventPublisher, log *logger.Logger) *ScheduleCommands {
	if log == nil {
		log = logger.Default()
	}
	return &ScheduleCommands{
		blocks:    blocks,
		publisher: publisher,
		log:       log.With(logger.Component("schedule_commands")),
	}
}

// BlockInput is the wire shape of a schedule block mutation.
type BlockInput struct {
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

// Create validates and persists a new block.
func (c *ScheduleCommands) Create(ctx context.Context, userID string, input BlockInput) (*schedule.Block, error) {
	block, err := schedule.NewBlock(schedule.NewBlockParams{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     input.Title,
		Kind:      schedule.Kind(input.Kind),
		Day:       input.Day,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Location:  input.Location,
	})
	if err != nil {
		return nil, err
	}

	if err := c.blocks.Create(ctx, block); err != nil {
		return nil, err
	}

	c.publishChanged(block.ID, userID, "created")
	c.log.Info("schedule block created", logger.UserID(userID), logger.BlockID(block.ID))
	return block, nil
}

// Update applies new field values to an existing block.
func (c *ScheduleCommands) Update(ctx context.Context, userID, blockID string, input BlockInput) (*schedule.Block, error) {
	block, err := c.ownedBlock(ctx, userID, blockID)
	if err != nil {
		return nil, err
	}

	if err := block.Apply(schedule.NewBlockParams{
		Title:     input.Title,
		Kind:      schedule.Kind(input.Kind),
		Day:       input.Day,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Location:  input.Location,
	}); err != nil {
		return nil, err
	}

	if err := c.blocks.Update(ctx, block); err != nil {
		return nil, err
	}

	c.publishChanged(block.ID, userID, "updated")
	return block, nil
}

// Delete removes a block.
func (c *ScheduleCommands) Delete(ctx context.Context, userID, blockID string) error {
	if _, err := c.ownedBlock(ctx, userID, blockID); err != nil {
		return err
	}

	if err := c.blocks.Delete(ctx, blockID); err != nil {
		return err
	}

	c.publishChanged(blockID, userID, "deleted")
	return nil
}

// ownedBlock loads a block and checks ownership. Foreign blocks read as
// missing, so IDs cannot be probed across users.
func (c *ScheduleCommands) ownedBlock(ctx context.Context, userID, blockID string) (*schedule.Block, error) {
	block, err := c.blocks.GetByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block.UserID != userID {
		return nil, schedule.ErrBlockNotFound
	}
	return block, nil
}

func (c *ScheduleCommands) publishChanged(blockID, userID, action string) {
	if c.publisher == nil {
		return
	}
	event := shared.NewCollectionChangedEvent(shared.EventScheduleChanged, blockID, userID, "schedule", action)
	if err := c.publisher.Publish(event); err != nil {
		c.log.Warn("failed to publish schedule change", logger.Err(err))
	}
}
