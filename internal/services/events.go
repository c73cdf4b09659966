package services

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// Routing keys of the domain events published after a successful commit.
const (
	EventUserDeleted      = "user.deleted"
	EventUserSubscribed   = "user.subscribed"
	EventUserUnsubscribed = "user.unsubscribed"
)

// EventPublisher delivers a serialized event under a routing key.
// *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// UserEvent is the payload of every user event. ActorID is set for
// subscription events only.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// publish sends ev if a publisher is configured. The state change it
// describes is already committed, so failures are only logged.
func publish(pub EventPublisher, log *logrus.Entry, ev UserEvent) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).WithField("event", ev.Type).Error("Failed to marshal event")
		return
	}
	if err := pub.Publish(ev.Type, body); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"event":  ev.Type,
			"userId": ev.UserID,
		}).Warn("Failed to publish event")
	}
}
