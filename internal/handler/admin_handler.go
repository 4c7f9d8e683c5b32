package handler

import (
	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/constant"
	"zaika-pay-api/internal/dal"
	"zaika-pay-api/internal/dto"
	"zaika-pay-api/internal/health"
	"zaika-pay-api/internal/service"
	"zaika-pay-api/internal/utils"
)

// AdminHandler 管理端流水查询接口
type AdminHandler struct {
	query  *service.PaymentQueryService
	health *health.GatewayHealthManager
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		query:  service.NewPaymentQueryService(),
		health: health.NewGatewayHealthManager(dal.RedisClient),
	}
}

func (h *AdminHandler) ListTransactions(c *gin.Context) {
	var q dto.TxnListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(200, utils.Error(constant.CodeParamsTypeError))
		return
	}

	resp, err := h.query.ListTransactions(q)
	if err != nil {
		c.JSON(200, utils.Error(constant.CodeDatabaseError))
		return
	}
	c.JSON(200, utils.Success(resp))
}

func (h *AdminHandler) GetTransaction(c *gin.Context) {
	txnID := c.Param("id")
	if txnID == "" {
		c.JSON(200, utils.Error(constant.CodeMissingParams))
		return
	}

	txn, err := h.query.GetTransaction(txnID)
	if err != nil {
		c.JSON(200, utils.Error(constant.CodeDatabaseError))
		return
	}
	if txn == nil {
		c.JSON(200, utils.Error(constant.CodeTransactionNotFound))
		return
	}
	c.JSON(200, utils.Success(txn))
}

// GatewayHealth 网关成功率与降级标记
func (h *AdminHandler) GatewayHealth(c *gin.Context) {
	c.JSON(200, utils.Success(gin.H{
		"gateway":      "billdesk",
		"success_rate": h.health.SuccessRate("billdesk"),
		"degraded":     h.health.IsDegraded("billdesk"),
	}))
}

func (h *AdminHandler) TransactionSummary(c *gin.Context) {
	resp, err := h.query.TransactionSummary(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		c.JSON(200, utils.Error(constant.CodeDatabaseError))
		return
	}
	c.JSON(200, utils.Success(resp))
}
