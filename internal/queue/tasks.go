package queue

import (
	"encoding/json"

	"github.com/kandu-shop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskStockLowAlert 低库存告警任务
	TaskStockLowAlert = constants.TaskStockLowAlert
)

// StockLowAlertPayload 低库存告警任务载荷
type StockLowAlertPayload struct {
	ProductID uint `json:"product_id"`
	Remaining int  `json:"remaining"`
}

// NewStockLowAlertTask 创建低库存告警任务
func NewStockLowAlertTask(payload StockLowAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockLowAlert, body), nil
}
