package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"zaika-pay-api/internal/dal"
	"zaika-pay-api/internal/model"
)

type OrderDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.DB
func NewOrderDao() *OrderDao {
	if dal.DB == nil {
		log.Panic("[FATAL] dal.DB is nil - database not initialized")
	}
	return &OrderDao{DB: dal.DB}
}

func (r *OrderDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetByUser 按订单号 + 归属用户查询，不存在或越权均返回 nil
func (r *OrderDao) GetByUser(orderID string, userID uint64) (*model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	var m model.Order
	err := r.DB.Where("order_id = ? AND user_id = ?", orderID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetByID 按订单号查询（并发竞争失败后的确定性回读）
func (r *OrderDao) GetByID(orderID string) (*model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	var m model.Order
	err := r.DB.Where("order_id = ?", orderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// MarkPendingCAS 条件更新 CREATED -> PENDING，返回是否命中
// 以 status 为条件保证并发下单只有一个请求能写入网关订单号
func (r *OrderDao) MarkPendingCAS(orderID, bdOrderID, txnID string) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("mark pending failed: %w", err)
	}

	res := r.DB.Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusPending,
			"bd_order_id":    bdOrderID,
			"transaction_id": txnID,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ResetForRetry CREATED|FAILED -> CREATED，清空失败元数据，返回是否命中
func (r *OrderDao) ResetForRetry(orderID string) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("reset order failed: %w", err)
	}

	res := r.DB.Model(&model.Order{}).
		Where("order_id = ? AND status IN ?", orderID, []string{model.OrderStatusCreated, model.OrderStatusFailed}).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusCreated,
			"failed_at":      nil,
			"failure_reason": nil,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ListByUser 用户支付历史，按创建时间倒序
func (r *OrderDao) ListByUser(userID uint64, limit int) ([]model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list orders failed: %w", err)
	}

	var out []model.Order
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}
