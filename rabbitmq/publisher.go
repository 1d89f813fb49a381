// Package rabbitmq is the queue-backed order sink. Deployments that do not
// point at the fulfillment webhook can drop accepted orders on a durable
// queue instead, selected with ORDER_SINK=rabbitmq.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

// Publisher publishes composed orders to the order queue. It implements
// the same dispatcher seam as the webhook client.
type Publisher struct {
	pool      *ChannelPool
	queueName string
}

func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
	}
}

// Dispatch publishes the order as a persistent JSON message.
func (p *Publisher) Dispatch(ctx context.Context, order models.Order) error {
	ch, err := p.pool.Get()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.Put(ch)

	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}

	log.Printf("Published order totaling %d to queue %q", order.Total, p.queueName)
	return nil
}
