package rediskey

import "fmt"

// 订单状态快照缓存 key
func OrderStatus(orderID string, userID uint64) string {
	return fmt.Sprintf("pay:order:%s:%d", orderID, userID)
}

// 网关成功率缓存 key
func GatewaySuccessRate(gateway string) string {
	return "pay:gateway:success_rate:" + gateway
}

// 网关降级标记 key
func GatewayDegraded(gateway string) string {
	return "pay:gateway:degraded:" + gateway
}
