package server

import (
	"context"
	"encoding/json"
	"log"

	"dentalreach/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventNotificationCreated = "notification_created"
	EventArticleApproved     = "article_approved"
	EventEventUpdated        = "event_updated"
	EventProductApproved     = "product_approved"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
	observability.NotificationsPublished.WithLabelValues(eventType).Inc()
}

func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
	observability.NotificationsPublished.WithLabelValues(eventType).Inc()
}

// notifyNotificationCreated tells connected clients that a new row landed in
// their notification feed. Clients react by re-fetching the unread count.
func (s *Server) notifyNotificationCreated(userID, notificationID uint, notificationType string) {
	s.publishUserEvent(userID, EventNotificationCreated, map[string]interface{}{
		"notification_id": notificationID,
		"type":            notificationType,
	})
}
