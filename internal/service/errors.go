package service

import "errors"

// 状态机层的调用方错误，不触发自动重试
var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderAlreadyPaid PAID 为终态，禁止再次发起下单
	ErrOrderAlreadyPaid = errors.New("order already paid")

	// ErrOrderRetryRequired FAILED 订单必须显式重试清除失败状态后才能再次下单
	ErrOrderRetryRequired = errors.New("order failed, retry required")

	// ErrOrderProcessing 已有进行中的网关交易（PENDING），包含并发竞争失败的场景
	ErrOrderProcessing = errors.New("order payment in progress")

	// ErrRetryStateInvalid 仅 CREATED|FAILED 允许重试
	ErrRetryStateInvalid = errors.New("retry not allowed in current status")
)
