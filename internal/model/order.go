package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 订单状态机：CREATED -> PENDING -> PAID / FAILED
// CREATED|FAILED 可经显式重试回到 CREATED，PAID 为终态
const (
	OrderStatusCreated = "CREATED"
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
	OrderStatusFailed  = "FAILED"
)

type Order struct {
	OrderID       string          `gorm:"column:order_id;primaryKey"`
	UserID        uint64          `gorm:"column:user_id"`
	Amount        decimal.Decimal `gorm:"column:amount"`
	Currency      string          `gorm:"column:currency"`
	Status        string          `gorm:"column:status"`
	BdOrderID     *string         `gorm:"column:bd_order_id"`
	TransactionID *string         `gorm:"column:transaction_id"`
	EventID       string          `gorm:"column:event_id"`
	TeamID        string          `gorm:"column:team_id"`
	PaidAt        *time.Time      `gorm:"column:paid_at"`
	FailedAt      *time.Time      `gorm:"column:failed_at"`
	FailureReason *string         `gorm:"column:failure_reason"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (Order) TableName() string { return "orders" }

// CurrencyOrDefault 币种统一以订单行为准，空值回退 INR 数字码
func (o *Order) CurrencyOrDefault() string {
	if o.Currency == "" {
		return "356"
	}
	return o.Currency
}
