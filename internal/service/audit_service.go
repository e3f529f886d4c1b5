package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-tracker/internal/events"
)

// AuditSink persists events outside the process.
type AuditSink interface {
	Append(ctx context.Context, event events.Event) error
}

// AuditService records every directory change in the log and, when a sink is
// configured, in an external stream.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sink       AuditSink
}

// NewAuditService creates the service. sink may be nil.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, sink AuditSink) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		sink:       sink,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	a.logger.Debug("directory changed",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))

	if a.sink == nil {
		return nil
	}
	return a.sink.Append(ctx, event)
}
