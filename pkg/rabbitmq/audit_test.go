package rabbitmq

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	amqp "github.com/streadway/amqp"
)

type mockAcknowledger struct {
	mock.Mock
}

func (m *mockAcknowledger) Ack(multiple bool) error {
	return m.Called(multiple).Error(0)
}

func (m *mockAcknowledger) Nack(multiple, requeue bool) error {
	return m.Called(multiple, requeue).Error(0)
}

func TestAuditHandler(t *testing.T) {
	l, hook := test.NewNullLogger()
	handle := AuditHandler(logrus.NewEntry(l))

	err := handle(amqp.Delivery{RoutingKey: "user.subscribed", Body: []byte(`{"type":"user.subscribed","userId":"u2","actorId":"u1"}`)})
	assert.NoError(t, err)
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "u2", entry.Data["userId"])
		assert.Equal(t, "u1", entry.Data["actorId"])
		assert.Equal(t, "user.subscribed", entry.Data["routingKey"])
	}

	assert.Error(t, handle(amqp.Delivery{RoutingKey: "user.deleted", Body: []byte("not json")}))
	assert.Error(t, handle(amqp.Delivery{RoutingKey: "user.deleted", Body: []byte(`{"type":"user.deleted"}`)}))
}

func TestAckDelivery(t *testing.T) {
	l, _ := test.NewNullLogger()
	log := logrus.NewEntry(l)

	ok := new(mockAcknowledger)
	ok.On("Ack", false).Return(nil).Once()
	ackDelivery(log, ok, nil)
	ok.AssertExpectations(t)

	failed := new(mockAcknowledger)
	failed.On("Nack", false, false).Return(errors.New("closed")).Once()
	ackDelivery(log, failed, errors.New("bad body"))
	failed.AssertExpectations(t)
}

func TestClientWithoutConnectionIsClosed(t *testing.T) {
	assert.True(t, (&Client{}).IsClosed())
}
