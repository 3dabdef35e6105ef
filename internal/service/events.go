package service

import (
	EventBus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Event topics published on the bus
const (
	TopicProductCreated = "product:created"
	TopicProductUpdated = "product:updated"
	TopicProductDeleted = "product:deleted"
	TopicClientCreated  = "client:created"
	TopicClientDeleted  = "client:deleted"
)

type publisher struct {
	bus EventBus.Bus
}

func (p publisher) publish(topic string, args ...interface{}) {
	if p.bus == nil {
		return
	}
	zap.L().Debug("publish event", zap.String("topic", topic))
	p.bus.Publish(topic, args...)
}
