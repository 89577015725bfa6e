package service

import (
	"context"
	"strings"
	"time"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/events"
	pktNats "vc-copilot-be/pkg/nats"
)

// EventAnalysisReady is published when a rubric analysis finishes after an
// upload; clients listening on the founder's socket refresh their gap view.
const EventAnalysisReady = "ANALYSIS_READY"

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(founderID string, notification dto.NotificationMessage)
}

type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects arrive as "events.<TYPE>".
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	switch typeCode {
	case EventAnalysisReady:
		payload := event.Payload()
		founderID, _ := payload["founder_id"].(string)
		if founderID == "" {
			s.logger.Warn("NotificationService", "ANALYSIS_READY without founder_id", map[string]interface{}{"payload": payload})
			return nil
		}

		s.delivery.Send(founderID, dto.NotificationMessage{
			Type:      EventAnalysisReady,
			FounderId: founderID,
			Title:     "Document analysis ready",
			Message:   "Your pitch analysis has been updated.",
			Data:      payload,
			CreatedAt: time.Now(),
		})
		s.logger.Info("NotificationService", "Delivered analysis notification", map[string]interface{}{"founder_id": founderID})
	default:
		// Other event types have no notification behavior yet.
	}
	return nil
}
