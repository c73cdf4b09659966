package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// AuditEvent is the subset of an event body the audit consumer records.
type AuditEvent struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	ActorID string `json:"actorId,omitempty"`
}

// AuditHandler returns a delivery handler that writes every user event to the
// log. Malformed bodies are rejected.
func AuditHandler(log *logrus.Entry) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		return audit(log, msg.RoutingKey, msg.Body)
	}
}

func audit(log *logrus.Entry, routingKey string, body []byte) error {
	var ev AuditEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", routingKey, err)
	}
	if ev.UserID == "" {
		return fmt.Errorf("%s event has no userId", routingKey)
	}
	log.WithFields(logrus.Fields{
		"routingKey": routingKey,
		"userId":     ev.UserID,
		"actorId":    ev.ActorID,
	}).Info("Audit event")
	return nil
}
