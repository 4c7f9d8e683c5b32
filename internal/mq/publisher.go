package mq

import (
	"encoding/json"
	"log"

	"zaika-pay-api/internal/dal"

	"github.com/streadway/amqp"
)

// PaymentEvent 支付状态事件，供下游对账/通知消费
type PaymentEvent struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	BdOrderID     string `json:"bd_order_id,omitempty"`
	UserID        uint64 `json:"user_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

const (
	RouteInitiated = "payment.initiated"
	RouteFailed    = "payment.failed"
)

// PublishPaymentEvent MQ 未初始化时静默跳过（测试环境），发布失败只记日志不阻断交易
func PublishPaymentEvent(routingKey string, evt PaymentEvent) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := dal.RabbitCh.Publish(
		"payment_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
