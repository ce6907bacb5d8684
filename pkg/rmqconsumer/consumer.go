package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"file-drive-api/config"
	"file-drive-api/internal/infrastructure/mq"
)

const preFetchCount = 1

// Consumer reads file events back off the queue and writes them to the
// audit log.
type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	ownsConn   bool
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume, c.ownsConn = conn, ch, true

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

// Init declares the topology on a channel of the shared connection when
// Connect was not called.
func (c *Consumer) Init() error {
	var err error
	if c.chConsume == nil {
		if c.chConsume, err = c.conn.Channel(); err != nil {
			return fmt.Errorf("amqp channel: %w", err)
		}
	}

	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range mq.RoutingKeys {
		if err = c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

// Close releases the connection opened by Connect. A connection shared in
// through New belongs to its creator and is left open.
func (c *Consumer) Close() error {
	if !c.ownsConn || c.conn == nil {
		return nil
	}
	c.ownsConn = false
	return c.conn.Close()
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error",
					zap.String("routing_key", msg.RoutingKey),
					zap.Error(err),
				)
			}
		case <-ctx.Done():
			_ = c.chConsume.Close()
			return
		}
	}
}

func actionFor(routingKey string) string {
	switch routingKey {
	case mq.FileCreated:
		return "FileCreated"
	case mq.FileDeleted:
		return "FileDeleted"
	case mq.FavoriteToggled:
		return "FavoriteToggled"
	}
	return ""
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	action := actionFor(msg.RoutingKey)
	if action == "" {
		return fmt.Errorf("unknown routing key %q", msg.RoutingKey)
	}

	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode %s: %w", action, err)
	}

	fields := []zap.Field{
		zap.String("action", action),
		zap.Stringer("event_id", e.Id),
		zap.Time("ts", e.TS),
		zap.String("user", e.UserID),
		zap.String("org_id", e.OrgID),
		zap.Stringer("file_id", e.Payload.FileID),
	}
	if e.Payload.IsFavorited != nil {
		fields = append(fields, zap.Bool("is_favorited", *e.Payload.IsFavorited))
	}
	c.log.Info("audit", fields...)

	return nil
}
