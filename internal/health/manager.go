package health

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	rediskey "zaika-pay-api/internal/types/redis-key"
)

// GatewayHealthManager 网关成功率追踪：每次下单结果喂入策略，
// 低于阈值时打降级标记，供管理端查看网关健康度
type GatewayHealthManager struct {
	Redis     *redis.Client
	Strategy  SuccessRateStrategy
	Threshold float64 // 降级阈值，例如 60.0
	TTL       time.Duration
}

func NewGatewayHealthManager(rdb *redis.Client) *GatewayHealthManager {
	return &GatewayHealthManager{
		Redis:     rdb,
		Strategy:  &EWMAStrategy{Alpha: 0.1},
		Threshold: 60.0,
		TTL:       30 * time.Minute,
	}
}

func (m *GatewayHealthManager) Update(gateway string, success bool) error {
	if m == nil || m.Redis == nil {
		return nil
	}
	ctx := context.Background()
	key := rediskey.GatewaySuccessRate(gateway)

	currentRate, err := m.Redis.Get(ctx, key).Float64()
	if err != nil {
		currentRate = 100.0
	}

	newRate := m.Strategy.Update(currentRate, success)
	if newRate < m.Threshold {
		_ = m.Redis.Set(ctx, rediskey.GatewayDegraded(gateway), 1, m.TTL).Err()
	} else {
		_ = m.Redis.Del(ctx, rediskey.GatewayDegraded(gateway)).Err()
	}

	return m.Redis.Set(ctx, key, newRate, m.TTL).Err()
}

// SuccessRate 当前成功率，无记录时按 100 处理
func (m *GatewayHealthManager) SuccessRate(gateway string) float64 {
	if m == nil || m.Redis == nil {
		return 100.0
	}
	rate, err := m.Redis.Get(context.Background(), rediskey.GatewaySuccessRate(gateway)).Float64()
	if err != nil {
		return 100.0
	}
	return rate
}

func (m *GatewayHealthManager) IsDegraded(gateway string) bool {
	if m == nil || m.Redis == nil {
		return false
	}
	val, err := m.Redis.Get(context.Background(), rediskey.GatewayDegraded(gateway)).Int()
	return err == nil && val == 1
}
