// Package events は注文イベントをRabbitMQへ送る。
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"marketplace/internal/domain/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyOrderCreated = "order.created"

// order.created の本文
type OrderCreated struct {
	OrderID   string    `json:"order_id"`
	TxRef     string    `json:"tx_ref"`
	UserID    string    `json:"user_id"`
	ItemCount int       `json:"item_count"`
	Subtotal  string    `json:"subtotal"`
	CreatedAt time.Time `json:"created_at"`
}

func NewOrderCreated(o model.Order) OrderCreated {
	return OrderCreated{
		OrderID:   o.ID.String(),
		TxRef:     o.TxRef,
		UserID:    o.UserID.String(),
		ItemCount: len(o.Items),
		Subtotal:  o.Subtotal().StringFixed(2),
		CreatedAt: o.CreatedAt,
	}
}

type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	//channelは並行publishできない
	mu sync.Mutex
}

// Dial は接続してtopic exchangeを宣言する
func Dial(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) PublishOrderCreated(ctx context.Context, o model.Order) error {
	body, err := json.Marshal(NewOrderCreated(o))
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		MessageId:    o.TxRef,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange,
		RoutingKeyOrderCreated,
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// ブローカーを使わない環境用
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, model.Order) error { return nil }
