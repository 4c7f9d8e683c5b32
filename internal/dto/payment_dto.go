package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type InitiatePaymentReq struct {
	OrderID string `json:"orderId" binding:"required"`
}

type RetryPaymentReq struct {
	OrderID string `json:"orderId" binding:"required"`
}

// RequestContext 随下单请求透传的客户端上下文，进入网关设备指纹块
type RequestContext struct {
	IP        string
	UserAgent string
}

// InitiatePaymentResp 下单成功响应：三个跳转参数 + 跳转地址交给前端做表单提交
type InitiatePaymentResp struct {
	OrderID       string `json:"orderId"`
	BdOrderID     string `json:"bdOrderId"`
	TransactionID string `json:"transactionId"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	MerchantID    string `json:"merchantid"`
	RData         string `json:"rdata"`
	RedirectURL   string `json:"redirectUrl"`
}

type RetryPaymentResp struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type OrderStatusResp struct {
	OrderID       string          `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transactionId"`
	PaidAt        *time.Time      `json:"paidAt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TxnListQuery 管理端流水查询条件
type TxnListQuery struct {
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=50"`
}

type TxnItem struct {
	TransactionID string          `json:"transactionId"`
	OrderID       string          `json:"orderId"`
	UserID        uint64          `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	BdOrderID     *string         `json:"bdOrderId"`
	BdTraceID     *string         `json:"bdTraceId"`
	ErrorMessage  *string         `json:"errorMessage"`
	InitiatedAt   time.Time       `json:"initiatedAt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type TxnListResp struct {
	Transactions []TxnItem  `json:"transactions"`
	Pagination   Pagination `json:"pagination"`
}

// TxnStatusAgg 按状态聚合结果（dao 扫描目标）
type TxnStatusAgg struct {
	Status      string          `gorm:"column:status" json:"status"`
	Count       int64           `gorm:"column:count" json:"count"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount" json:"totalAmount"`
}

type TxnSummaryBucket struct {
	Count  int64  `json:"count"`
	Amount string `json:"amount"`
}

type TxnSummaryResp struct {
	Summary   map[string]TxnSummaryBucket `json:"summary"`
	StartDate string                      `json:"startDate,omitempty"`
	EndDate   string                      `json:"endDate,omitempty"`
}
