package service

import (
	"encoding/json"
	"time"

	"github.com/jinzhu/copier"

	"zaika-pay-api/internal/dal"
	"zaika-pay-api/internal/dao"
	"zaika-pay-api/internal/dto"
	"zaika-pay-api/internal/model"
	"zaika-pay-api/internal/utils"
)

// PaymentQueryService 查询侧：订单状态、支付历史、管理端流水
type PaymentQueryService struct {
	orders *dao.OrderDao
	txns   *dao.TransactionDao
}

func NewPaymentQueryService() *PaymentQueryService {
	return &PaymentQueryService{
		orders: dao.NewOrderDao(),
		txns:   dao.NewTransactionDao(),
	}
}

// OrderStatus 订单状态查询，缓存优先，未命中回源后写入
func (s *PaymentQueryService) OrderStatus(orderID string, userID uint64) (dto.OrderStatusResp, error) {
	var resp dto.OrderStatusResp

	key := orderCacheKey(orderID, userID)
	if dal.RedisClient != nil {
		if cached, err := dal.RedisClient.Get(dal.RedisCtx, key).Result(); err == nil {
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return resp, nil
			}
		}
	}

	order, err := s.orders.GetByUser(orderID, userID)
	if err != nil {
		return resp, err
	}
	if order == nil {
		return resp, ErrOrderNotFound
	}

	if err := copier.Copy(&resp, order); err != nil {
		return resp, err
	}
	resp.Currency = order.CurrencyOrDefault()

	if dal.RedisClient != nil {
		_ = dal.RedisClient.Set(dal.RedisCtx, key, utils.MapToJSON(resp), time.Minute).Err()
	}
	return resp, nil
}

// History 用户支付历史，最近 50 条
func (s *PaymentQueryService) History(userID uint64) ([]dto.OrderStatusResp, error) {
	orders, err := s.orders.ListByUser(userID, 50)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderStatusResp, 0, len(orders))
	for i := range orders {
		var item dto.OrderStatusResp
		if err := copier.Copy(&item, &orders[i]); err != nil {
			return nil, err
		}
		item.Currency = orders[i].CurrencyOrDefault()
		out = append(out, item)
	}
	return out, nil
}

// ListTransactions 管理端流水列表
func (s *PaymentQueryService) ListTransactions(q dto.TxnListQuery) (dto.TxnListResp, error) {
	var resp dto.TxnListResp
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 200 {
		q.Limit = 50
	}

	rows, total, err := s.txns.List(q)
	if err != nil {
		return resp, err
	}

	items := make([]dto.TxnItem, 0, len(rows))
	for i := range rows {
		var item dto.TxnItem
		if err := copier.Copy(&item, &rows[i]); err != nil {
			return resp, err
		}
		items = append(items, item)
	}

	resp.Transactions = items
	resp.Pagination = dto.Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: (total + int64(q.Limit) - 1) / int64(q.Limit),
	}
	return resp, nil
}

// GetTransaction 管理端单笔流水详情
func (s *PaymentQueryService) GetTransaction(txnID string) (*model.Transaction, error) {
	return s.txns.GetByID(txnID)
}

// TransactionSummary 按状态聚合统计
func (s *PaymentQueryService) TransactionSummary(startDate, endDate string) (dto.TxnSummaryResp, error) {
	resp := dto.TxnSummaryResp{
		Summary:   make(map[string]dto.TxnSummaryBucket),
		StartDate: startDate,
		EndDate:   endDate,
	}

	rows, err := s.txns.Summary(startDate, endDate)
	if err != nil {
		return resp, err
	}

	var total dto.TxnStatusAgg
	for _, row := range rows {
		resp.Summary[row.Status] = dto.TxnSummaryBucket{
			Count:  row.Count,
			Amount: row.TotalAmount.String(),
		}
		total.Count += row.Count
		total.TotalAmount = total.TotalAmount.Add(row.TotalAmount)
	}
	resp.Summary["TOTAL"] = dto.TxnSummaryBucket{
		Count:  total.Count,
		Amount: total.TotalAmount.String(),
	}
	return resp, nil
}
