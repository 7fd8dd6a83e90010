// Package eventhandler contains the reactive consumers wired to the event
// bus.
package eventhandler

import (
	"context"

	"github.com/studyhall/studyhall/internal/application/query"
	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/pkg/logger"
)

// AgendaInvalidator drops a user's cached agenda index whenever one of their
// source collections changes, so the next read rebuilds from fresh data.
type AgendaInvalidator struct {
	cache query.AgendaIndexCache
	log   *logger.Logger
}

// NewAgendaInvalidator creates the invalidator.
func NewAgendaInvalidator(cache query.AgendaIndexCache, log *logger.Logger) *AgendaInvalidator {
	if log == nil {
		log = logger.Default()
	}
	return &AgendaInvalidator{
		cache: cache,
		log:   log.With(logger.Component("agenda_invalidator")),
	}
}

// Name implements shared.EventHandler.
func (h *AgendaInvalidator) Name() string { return "agenda_invalidator" }

// Handle implements shared.EventHandler. Non-collection events pass through.
func (h *AgendaInvalidator) Handle(ctx context.Context, event shared.Event) error {
	payload := event.Payload()
	userID, _ := payload["user_id"].(string)
	if userID == "" {
		return nil
	}

	if err := h.cache.Invalidate(ctx, userID); err != nil {
		h.log.Warn("failed to invalidate agenda cache", logger.UserID(userID), logger.Err(err))
		return err
	}

	h.log.Debug("agenda cache invalidated", logger.UserID(userID))
	return nil
}

// EventTypes returns the event types the invalidator subscribes to.
func EventTypes() []shared.EventType {
	return []shared.EventType{
		shared.EventScheduleChanged,
		shared.EventDeadlineChanged,
		shared.EventTaskChanged,
		shared.EventSyllabusChanged,
	}
}
