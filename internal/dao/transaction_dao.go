package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"zaika-pay-api/internal/dal"
	"zaika-pay-api/internal/dto"
	"zaika-pay-api/internal/model"
)

type TransactionDao struct {
	DB *gorm.DB
}

func NewTransactionDao() *TransactionDao {
	if dal.DB == nil {
		log.Panic("[FATAL] dal.DB is nil - database not initialized")
	}
	return &TransactionDao{DB: dal.DB}
}

func (r *TransactionDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// Insert 每次下单尝试写一条流水，网络调用前先落库
func (r *TransactionDao) Insert(t *model.Transaction) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert transaction failed: %w", err)
	}
	return r.DB.Create(t).Error
}

// MarkFailed 记录网关失败原因
func (r *TransactionDao) MarkFailed(txnID, errMsg string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("mark transaction failed: %w", err)
	}
	return r.DB.Model(&model.Transaction{}).
		Where("transaction_id = ?", txnID).
		Updates(map[string]interface{}{
			"status":        model.TxnStatusFailed,
			"error_message": errMsg,
		}).Error
}

// SetGatewayRefs 下单成功后回填网关订单号与追踪号
func (r *TransactionDao) SetGatewayRefs(txnID, bdOrderID, traceID string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("set gateway refs failed: %w", err)
	}
	return r.DB.Model(&model.Transaction{}).
		Where("transaction_id = ?", txnID).
		Updates(map[string]interface{}{
			"bd_order_id": bdOrderID,
			"bd_trace_id": traceID,
		}).Error
}

// GetByID 按流水号查询
func (r *TransactionDao) GetByID(txnID string) (*model.Transaction, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get transaction failed: %w", err)
	}

	var m model.Transaction
	err := r.DB.Where("transaction_id = ?", txnID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// List 管理端流水列表，支持状态与时间范围过滤 + 分页
func (r *TransactionDao) List(q dto.TxnListQuery) ([]model.Transaction, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list transactions failed: %w", err)
	}

	db := r.DB.Model(&model.Transaction{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.StartDate != "" {
		db = db.Where("created_at >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		db = db.Where("created_at <= ?", q.EndDate)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var out []model.Transaction
	err := db.Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("find failed: %w", err)
	}
	return out, total, nil
}

// Summary 按状态聚合笔数与金额
func (r *TransactionDao) Summary(startDate, endDate string) ([]dto.TxnStatusAgg, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("summary failed: %w", err)
	}

	db := r.DB.Model(&model.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount")
	if startDate != "" {
		db = db.Where("created_at >= ?", startDate)
	}
	if endDate != "" {
		db = db.Where("created_at <= ?", endDate)
	}

	var rows []dto.TxnStatusAgg
	if err := db.Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return rows, nil
}
