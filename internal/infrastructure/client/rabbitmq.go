package client

import (
	"context"
	"encoding/json"
	"log"

	"github.com/St1cky1/taskr-service/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const taskEventsQueue = "task_events"

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQClient(url string) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Объявляем очередь уведомлений о событиях задач
	queue, err := channel.QueueDeclare(
		taskEventsQueue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
	}, nil
}

// PublishTaskEvent публикует уведомление о событии задачи.
// Запись журнала к этому моменту уже закоммичена в БД.
func (c *RabbitMQClient) PublishTaskEvent(ctx context.Context, message *entity.TaskEventMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
		},
	)
	if err != nil {
		return err
	}

	log.Printf("Отправлено событие в RabbitMQ: %s задача ID=%d", message.Event, message.TaskID)
	return nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
