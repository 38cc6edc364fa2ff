package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewConsumer connects and sets the prefetch count to concurrency so the
// broker never hands out more turns than there are workers.
func NewConsumer(url, queue string, concurrency int) (*Consumer, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}
	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	if err := DeclareTopology(ch, queue); err != nil {
		closeAll()
		return nil, err
	}
	if err := ch.Qos(concurrency, 0, false); err != nil {
		closeAll()
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch, queue: queue}, nil
}

func (c *Consumer) Deliveries() (<-chan amqp.Delivery, error) {
	return c.ch.Consume(c.queue, "", false, false, false, false, nil)
}

func (c *Consumer) Close() error {
	_ = c.ch.Close()
	return c.conn.Close()
}
