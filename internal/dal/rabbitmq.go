package dal

import (
	"log"

	"zaika-pay-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("payment_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payment_initiated", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payment_initiated failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payment_failed", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payment_failed failed: %v", err)
	}
	if err := ch.QueueBind("payment_initiated", "payment.initiated", "payment_events", false, nil); err != nil {
		log.Fatalf("queue bind payment_initiated failed: %v", err)
	}
	if err := ch.QueueBind("payment_failed", "payment.failed", "payment_events", false, nil); err != nil {
		log.Fatalf("queue bind payment_failed failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
