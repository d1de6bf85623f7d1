package constants

// 购物车操作结果类型
const (
	CartOutcomeAdded      = "added"        // 全量加入
	CartOutcomePartial    = "partial"      // 部分满足（库存不足请求量）
	CartOutcomeOutOfStock = "out_of_stock" // 售罄，未发生任何变更
)

// DiscountPercentCeiling 折扣百分比上限（超过视为无效）
const DiscountPercentCeiling = 95

// 队列相关
const (
	QueueDefault      = "default"
	TaskStockLowAlert = "stock:low_alert"
)
