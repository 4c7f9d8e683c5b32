package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"zaika-pay-api/internal/billdesk"
	"zaika-pay-api/internal/config"
	"zaika-pay-api/internal/dal"
	"zaika-pay-api/internal/dao"
	"zaika-pay-api/internal/dto"
	"zaika-pay-api/internal/health"
	"zaika-pay-api/internal/idgen"
	"zaika-pay-api/internal/logger"
	"zaika-pay-api/internal/model"
	"zaika-pay-api/internal/mq"
	rediskey "zaika-pay-api/internal/types/redis-key"
	"zaika-pay-api/internal/utils"
)

// gatewayName 成功率追踪使用的网关标识
const gatewayName = "billdesk"

// OrderStore 订单存取边界，CAS 更新保证并发下只有一个请求能进入 PENDING
type OrderStore interface {
	GetByUser(orderID string, userID uint64) (*model.Order, error)
	GetByID(orderID string) (*model.Order, error)
	MarkPendingCAS(orderID, bdOrderID, txnID string) (bool, error)
	ResetForRetry(orderID string) (bool, error)
}

// TxnStore 交易流水存取边界
type TxnStore interface {
	Insert(t *model.Transaction) error
	MarkFailed(txnID, errMsg string) error
	SetGatewayRefs(txnID, bdOrderID, traceID string) error
}

// Gateway 网关客户端边界
type Gateway interface {
	CreateOrder(ctx context.Context, payload *billdesk.OrderPayload) (*billdesk.CreateOrderResult, error)
	MerchantID() string
}

// PaymentOrderService 订单/交易状态机，驱动网关下单并落库状态迁移
type PaymentOrderService struct {
	orders    OrderStore
	txns      TxnStore
	gateway   Gateway
	returnURL string
	payLog    *logrus.Logger
	health    *health.GatewayHealthManager
}

func NewPaymentOrderService(gw *billdesk.Client) *PaymentOrderService {
	return &PaymentOrderService{
		orders:    dao.NewOrderDao(),
		txns:      dao.NewTransactionDao(),
		gateway:   gw,
		returnURL: config.C.Billdesk.ReturnURL,
		payLog:    logger.NewLogger("payment"),
		health:    health.NewGatewayHealthManager(dal.RedisClient),
	}
}

// Initiate 发起网关下单
// 流程：归属校验 -> 幂等守卫 -> 组装报文 -> 先落流水 -> 调网关 -> CAS 迁移 PENDING -> 提取跳转参数
func (s *PaymentOrderService) Initiate(ctx context.Context, req dto.InitiatePaymentReq, userID uint64, reqCtx dto.RequestContext) (dto.InitiatePaymentResp, error) {
	var resp dto.InitiatePaymentResp

	// 1) 归属校验
	order, err := s.orders.GetByUser(req.OrderID, userID)
	if err != nil {
		return resp, err
	}
	if order == nil {
		return resp, ErrOrderNotFound
	}

	// 2) 幂等守卫：PAID 终态拒绝，FAILED 必须先显式重试，PENDING 已有进行中交易
	switch order.Status {
	case model.OrderStatusPaid:
		return resp, ErrOrderAlreadyPaid
	case model.OrderStatusFailed:
		return resp, ErrOrderRetryRequired
	case model.OrderStatusPending:
		return resp, ErrOrderProcessing
	}

	// 3) 组装业务报文，币种统一以订单行为准
	currency := order.CurrencyOrDefault()
	payload := &billdesk.OrderPayload{
		MercID:    s.gateway.MerchantID(),
		OrderID:   order.OrderID,
		Amount:    order.Amount.String(),
		OrderDate: billdesk.OrderDate(time.Now()),
		Currency:  currency,
		RU:        s.returnURL,
		AdditionalInfo: map[string]string{
			"event_id":   order.EventID,
			"user_id":    strconv.FormatUint(order.UserID, 10),
			"team_id":    order.TeamID,
			"ip":         reqCtx.IP,
			"user_agent": reqCtx.UserAgent,
		},
		ItemCode: "DIRECT",
		Device:   billdesk.DefaultDevice(reqCtx.IP, reqCtx.UserAgent),
	}

	// 4) 网络调用前先落流水，崩溃后仍可凭请求报文排查
	now := time.Now()
	txnID := idgen.NewTransactionID(order.OrderID)
	txn := &model.Transaction{
		TransactionID:  txnID,
		OrderID:        order.OrderID,
		UserID:         order.UserID,
		Amount:         order.Amount,
		Currency:       currency,
		Status:         model.TxnStatusInitiated,
		RequestPayload: utils.MapToJSON(payload),
		IPAddress:      reqCtx.IP,
		UserAgent:      reqCtx.UserAgent,
		InitiatedAt:    now,
		CreatedAt:      now,
	}
	if err := s.txns.Insert(txn); err != nil {
		return resp, err
	}
	s.logf("payment initiated: order_id=%s, transaction_id=%s, amount=%s", order.OrderID, txnID, order.Amount)

	// 5) 调网关，失败只标记流水，订单停留在 CREATED 可直接重新发起
	result, gwErr := s.gateway.CreateOrder(ctx, payload)
	_ = s.health.Update(gatewayName, gwErr == nil)
	if gwErr != nil {
		if err := s.txns.MarkFailed(txnID, gwErr.Error()); err != nil {
			log.Printf("[Payment] 标记流水失败: %v", err)
		}
		s.publishEvent(mq.RouteFailed, order, txnID, "", gwErr.Error())
		s.logf("payment gateway failed: order_id=%s, transaction_id=%s, err=%v", order.OrderID, txnID, gwErr)
		return resp, gwErr
	}

	// 6) 网关订单号：优先 bdorderid，其次回显的 orderid，最后退回本地订单号
	bdOrderID := string(result.BdOrderID)
	if bdOrderID == "" {
		bdOrderID = string(result.OrderID)
	}
	if bdOrderID == "" {
		bdOrderID = order.OrderID
	}

	// 7) CAS 迁移 CREATED -> PENDING，并发竞争失败时回读确定败因
	ok, err := s.orders.MarkPendingCAS(order.OrderID, bdOrderID, txnID)
	if err != nil {
		return resp, err
	}
	if !ok {
		if err := s.txns.MarkFailed(txnID, "并发下单冲突，状态迁移未命中"); err != nil {
			log.Printf("[Payment] 标记流水失败: %v", err)
		}
		current, rerr := s.orders.GetByID(order.OrderID)
		if rerr == nil && current != nil && current.Status == model.OrderStatusPaid {
			return resp, ErrOrderAlreadyPaid
		}
		return resp, ErrOrderProcessing
	}

	if err := s.txns.SetGatewayRefs(txnID, bdOrderID, result.TraceID); err != nil {
		log.Printf("[Payment] 回填网关流水信息失败: %v", err)
	}
	s.publishEvent(mq.RouteInitiated, order, txnID, bdOrderID, "")
	s.cachePending(order, bdOrderID, txnID, userID)

	// 8) 定位 redirect 链接，缺失属协议违例；订单已进入 PENDING，需区别于业务拒绝
	link, found := result.RedirectLink()
	if !found {
		s.logf("no redirect link in gateway response: order_id=%s, trace_id=%s", order.OrderID, result.TraceID)
		return resp, fmt.Errorf("%w: trace_id=%s", billdesk.ErrNoRedirect, result.TraceID)
	}

	merchantID := string(link.Parameters.MerchantID)
	if merchantID == "" {
		merchantID = s.gateway.MerchantID()
	}

	resp = dto.InitiatePaymentResp{
		OrderID:       order.OrderID,
		BdOrderID:     string(link.Parameters.BdOrderID),
		TransactionID: txnID,
		Amount:        order.Amount.String(),
		Currency:      currency,
		MerchantID:    merchantID,
		RData:         link.Parameters.RData,
		RedirectURL:   link.Href,
	}
	if resp.BdOrderID == "" {
		resp.BdOrderID = bdOrderID
	}
	s.logf("payment pending: order_id=%s, bd_order_id=%s, trace_id=%s", order.OrderID, bdOrderID, result.TraceID)
	return resp, nil
}

// Retry 显式重试：CREATED|FAILED -> CREATED，清空失败元数据
func (s *PaymentOrderService) Retry(orderID string, userID uint64) (dto.RetryPaymentResp, error) {
	var resp dto.RetryPaymentResp

	order, err := s.orders.GetByUser(orderID, userID)
	if err != nil {
		return resp, err
	}
	if order == nil {
		return resp, ErrOrderNotFound
	}

	if order.Status != model.OrderStatusCreated && order.Status != model.OrderStatusFailed {
		return resp, ErrRetryStateInvalid
	}

	ok, err := s.orders.ResetForRetry(orderID)
	if err != nil {
		return resp, err
	}
	if !ok {
		// 条件更新未命中说明状态已被并发修改
		return resp, ErrRetryStateInvalid
	}

	if dal.RedisClient != nil {
		_ = dal.RedisClient.Del(dal.RedisCtx, orderCacheKey(orderID, userID)).Err()
	}

	s.logf("payment retry: order_id=%s, user_id=%d", orderID, userID)
	resp.OrderID = orderID
	resp.Status = model.OrderStatusCreated
	return resp, nil
}

// cachePending PENDING 迁移成功后缓存订单快照，状态查询走缓存优先
func (s *PaymentOrderService) cachePending(order *model.Order, bdOrderID, txnID string, userID uint64) {
	if dal.RedisClient == nil {
		return
	}
	snapshot := dto.OrderStatusResp{
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.CurrencyOrDefault(),
		Status:        model.OrderStatusPending,
		TransactionID: &txnID,
		CreatedAt:     order.CreatedAt,
	}
	_ = dal.RedisClient.Set(dal.RedisCtx, orderCacheKey(order.OrderID, userID),
		utils.MapToJSON(snapshot), 10*time.Minute).Err()
}

func (s *PaymentOrderService) publishEvent(route string, order *model.Order, txnID, bdOrderID, errMsg string) {
	status := model.OrderStatusPending
	if route == mq.RouteFailed {
		status = model.TxnStatusFailed
	}
	_ = mq.PublishPaymentEvent(route, mq.PaymentEvent{
		OrderID:       order.OrderID,
		TransactionID: txnID,
		BdOrderID:     bdOrderID,
		UserID:        order.UserID,
		Amount:        order.Amount.String(),
		Currency:      order.CurrencyOrDefault(),
		Status:        status,
		ErrorMessage:  errMsg,
		CreatedAt:     time.Now().Unix(),
	})
}

func (s *PaymentOrderService) logf(format string, args ...interface{}) {
	if s.payLog != nil {
		s.payLog.Infof(format, args...)
	}
}

func orderCacheKey(orderID string, userID uint64) string {
	return rediskey.OrderStatus(orderID, userID)
}
