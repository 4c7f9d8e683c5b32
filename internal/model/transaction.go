package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 交易流水状态：每次下单尝试写一条流水，网关失败置 FAILED
const (
	TxnStatusInitiated = "INITIATED"
	TxnStatusFailed    = "FAILED"
)

type Transaction struct {
	TransactionID  string          `gorm:"column:transaction_id;primaryKey"`
	OrderID        string          `gorm:"column:order_id"`
	UserID         uint64          `gorm:"column:user_id"`
	Amount         decimal.Decimal `gorm:"column:amount"`
	Currency       string          `gorm:"column:currency"`
	Status         string          `gorm:"column:status"`
	RequestPayload string          `gorm:"column:request_payload"`
	BdOrderID      *string         `gorm:"column:bd_order_id"`
	BdTraceID      *string         `gorm:"column:bd_trace_id"`
	ErrorMessage   *string         `gorm:"column:error_message"`
	IPAddress      string          `gorm:"column:ip_address"`
	UserAgent      string          `gorm:"column:user_agent"`
	InitiatedAt    time.Time       `gorm:"column:initiated_at"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (Transaction) TableName() string { return "transactions" }
