package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
)

// ActivityService writes an audit trail entry for every domain event: a log
// line always, and a stored row when a repository is configured.
type ActivityService struct {
	dispatcher events.Dispatcher
	repo       repository.ActivityRepository
	logger     *zap.Logger
}

// NewActivityService creates the service. repo may be nil.
func NewActivityService(dispatcher events.Dispatcher, repo repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		repo:       repo,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventUserLoggedIn,
		events.EventProductCreated,
		events.EventProductUpdated,
		events.EventProductDeleted,
		events.EventCartItemAdded,
		events.EventCartItemRemoved,
	} {
		a.dispatcher.Subscribe(eventType, a.record)
	}
}

func (a *ActivityService) record(ctx context.Context, event events.Event) error {
	a.logger.Info("activity",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.Actor.UserID),
		zap.String("role", string(event.Actor.Role)),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload))

	if a.repo == nil {
		return nil
	}
	var payload json.RawMessage
	if event.Payload != nil {
		raw, err := json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", event.Type, err)
		}
		payload = raw
	}
	entry := &domain.ActivityEntry{
		EventID:   event.ID,
		EventType: string(event.Type),
		UserID:    event.Actor.UserID,
		Role:      event.Actor.Role,
		Payload:   payload,
		CreatedAt: event.Timestamp,
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Warn("store activity", zap.String("event_id", event.ID), zap.Error(err))
		return fmt.Errorf("store activity %s: %w", event.ID, err)
	}
	return nil
}
