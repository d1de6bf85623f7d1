package worker

import (
	"context"
	"encoding/json"

	"github.com/kandu-shop/internal/logger"
	"github.com/kandu-shop/internal/provider"
	"github.com/kandu-shop/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskStockLowAlert, c.handleStockLowAlert)
}

func (c *Consumer) handleStockLowAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stock_low_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.StockLowAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stock_low_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_stock_low_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	product, err := c.ProductRepo.GetByID(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_stock_low_alert_fetch_product_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if product == nil {
		logger.Debugw("worker_stock_low_alert_skip_product_not_found", "product_id", payload.ProductID)
		return nil
	}
	// 库存数据以当前行为准，任务载荷只反映入队时的快照
	logger.Warnw("stock_low_alert",
		"product_id", product.ID,
		"product_name", product.Name,
		"enqueued_remaining", payload.Remaining,
		"current_quantity", product.Quantity,
	)
	return nil
}
