package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/billdesk"
	"zaika-pay-api/internal/constant"
	"zaika-pay-api/internal/dto"
	"zaika-pay-api/internal/middleware"
	"zaika-pay-api/internal/service"
	"zaika-pay-api/internal/utils"
)

type PaymentHandler struct {
	svc   *service.PaymentOrderService
	query *service.PaymentQueryService
}

func NewPaymentHandler(gw *billdesk.Client) *PaymentHandler {
	return &PaymentHandler{
		svc:   service.NewPaymentOrderService(gw),
		query: service.NewPaymentQueryService(),
	}
}

// CreateOrder 发起支付：校验订单归属与状态，创建网关订单，返回跳转参数
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.InitiatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, utils.Error(constant.CodeInvalidParams))
		return
	}

	userID := middleware.UserID(c)
	reqCtx := dto.RequestContext{
		IP:        utils.GetRealClientIP(c),
		UserAgent: c.Request.UserAgent(),
	}

	resp, err := h.svc.Initiate(c.Request.Context(), req, userID, reqCtx)
	if err != nil {
		c.JSON(200, paymentError(err))
		return
	}
	c.JSON(200, utils.Success(resp))
}

// Retry 重置可重试订单回初始状态
func (h *PaymentHandler) Retry(c *gin.Context) {
	var req dto.RetryPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, utils.Error(constant.CodeInvalidParams))
		return
	}

	resp, err := h.svc.Retry(req.OrderID, middleware.UserID(c))
	if err != nil {
		c.JSON(200, paymentError(err))
		return
	}
	c.JSON(200, utils.Success(resp))
}

// OrderStatus 订单状态查询
func (h *PaymentHandler) OrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		c.JSON(200, utils.Error(constant.CodeMissingParams))
		return
	}

	resp, err := h.query.OrderStatus(orderID, middleware.UserID(c))
	if err != nil {
		c.JSON(200, paymentError(err))
		return
	}
	c.JSON(200, utils.Success(resp))
}

// History 用户支付历史
func (h *PaymentHandler) History(c *gin.Context) {
	resp, err := h.query.History(middleware.UserID(c))
	if err != nil {
		c.JSON(200, paymentError(err))
		return
	}
	c.JSON(200, utils.Success(resp))
}

// paymentError 业务错误到统一错误码的映射
func paymentError(err error) utils.Response {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return utils.Error(constant.CodeOrderNotFound)
	case errors.Is(err, service.ErrOrderAlreadyPaid):
		return utils.Error(constant.CodeOrderPaid)
	case errors.Is(err, service.ErrOrderRetryRequired):
		return utils.Error(constant.CodeOrderRetryRequired)
	case errors.Is(err, service.ErrOrderProcessing):
		return utils.Error(constant.CodeOrderProcessing)
	case errors.Is(err, service.ErrRetryStateInvalid):
		return utils.Error(constant.CodeOrderRetryForbidden)
	case errors.Is(err, billdesk.ErrUnreachable):
		return utils.Error(constant.CodeGatewayUnreachable)
	case errors.Is(err, billdesk.ErrNoRedirect):
		return utils.Error(constant.CodeGatewayInvalidResponse)
	case errors.Is(err, billdesk.ErrKeyLength):
		return utils.Error(constant.CodeGatewayConfig)
	}

	var bizErr *billdesk.BusinessError
	if errors.As(err, &bizErr) {
		return utils.CustomError(constant.CodeGatewayBusiness, bizErr.Message)
	}
	var transErr *billdesk.TransportError
	if errors.As(err, &transErr) {
		return utils.Error(constant.CodeGatewayTransport)
	}
	return utils.Error(constant.CodeSystemError)
}
