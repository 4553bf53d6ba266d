package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditSubscriber logs every coupon lifecycle event.
func RegisterAuditSubscriber(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("coupon lifecycle event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("code", event.Code),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []EventType{EventCouponAssigned, EventCouponLocked, EventCouponRedeemed} {
		dispatcher.Subscribe(eventType, handler)
	}
}
