package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/St1cky1/taskr-service/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	taskEventsQueue = "task_events"
	reconnectDelay  = 5 * time.Second
	consumerTag     = "event_worker"
)

// EventHandler обрабатывает одно уведомление о событии задачи
type EventHandler func(ctx context.Context, message *entity.TaskEventMessage) error

// EventWorker читает уведомления о событиях задач из RabbitMQ и передает
// их обработчику. Журнал в БД уже записан транзакционно, сюда приходит
// только зеркало для внешних потребителей.
type EventWorker struct {
	url     string
	handler EventHandler
}

func NewEventWorker(url string, handler EventHandler) *EventWorker {
	return &EventWorker{
		url:     url,
		handler: handler,
	}
}

// Start крутит цикл подключения, при обрыве соединения переподключается
func (w *EventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			fmt.Println("🛑 Event Worker остановлен")
			return
		default:
			if err := w.runConsumer(ctx); err != nil {
				log.Printf("❌ Event Worker ошибка: %v, переподключение через %s...", err, reconnectDelay)
				time.Sleep(reconnectDelay)
			}
		}
	}
}

func (w *EventWorker) runConsumer(ctx context.Context) error {
	// Отдельное соединение и канал для consumer'а
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	// Убеждаемся, что очередь существует
	_, err = channel.QueueDeclare(
		taskEventsQueue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("ошибка объявления очереди: %w", err)
	}

	msgs, err := channel.Consume(
		taskEventsQueue, // queue
		consumerTag,     // consumer tag
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	fmt.Println("✅ Event Worker запущен. Ожидаем сообщения...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал сообщений закрыт")
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *EventWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var message entity.TaskEventMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		log.Printf("❌ Ошибка парсинга сообщения: %v", err)
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}

	if err := w.handler(ctx, &message); err != nil {
		log.Printf("❌ Ошибка обработки события: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	msg.Ack(false)
}
