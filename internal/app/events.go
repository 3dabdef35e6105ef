package app

import (
	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/service"
	"go.uber.org/zap"
)

// subscribeEvents attaches the inventory audit log to the event bus.
func (a *Application) subscribeEvents() {
	threshold := a.services.Products.LowStockThreshold()
	handlers := map[string]interface{}{
		service.TopicProductCreated: func(p *domain.Product) {
			zap.L().Info("audit: product created", zap.Int64("product_id", p.ID), zap.String("sku", p.SKU))
		},
		service.TopicProductUpdated: func(p *domain.Product) {
			if p.Stock < threshold || p.Stock == 0 {
				zap.L().Warn("product stock is low",
					zap.Int64("product_id", p.ID),
					zap.String("sku", p.SKU),
					zap.Int("stock", p.Stock))
			}
		},
		service.TopicProductDeleted: func(id int64) {
			zap.L().Info("audit: product deleted", zap.Int64("product_id", id))
		},
		service.TopicClientCreated: func(c *domain.Client) {
			zap.L().Info("audit: client created", zap.Int64("client_id", c.UserID))
		},
		service.TopicClientDeleted: func(id int64) {
			zap.L().Info("audit: client deleted", zap.Int64("client_id", id))
		},
	}
	for topic, fn := range handlers {
		if err := a.bus.Subscribe(topic, fn); err != nil {
			zap.L().Error("event subscription failed", zap.String("topic", topic), zap.Error(err))
		}
	}
}
