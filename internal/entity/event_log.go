package entity

import "time"

type TaskEvent int

const (
	EventCreated       TaskEvent = 1
	EventEdited        TaskEvent = 2
	EventAssigned      TaskEvent = 3
	EventStatusChanged TaskEvent = 4
)

func (e TaskEvent) Valid() bool {
	return e >= EventCreated && e <= EventStatusChanged
}

func (e TaskEvent) String() string {
	switch e {
	case EventCreated:
		return "Created"
	case EventEdited:
		return "Edited"
	case EventAssigned:
		return "Assigned"
	case EventStatusChanged:
		return "Status changed"
	default:
		return "Unknown"
	}
}

// TaskEventLog - неизменяемая запись журнала действий над задачей.
// Строки пишутся в той же транзакции, что и сама мутация задачи,
// и удаляются каскадом вместе с задачей.
type TaskEventLog struct {
	ID          int       `json:"id"`
	CreatedOn   time.Time `json:"created_on"`
	TaskID      int       `json:"task"`
	UserID      int       `json:"user"`
	Event       TaskEvent `json:"event"`
	Description string    `json:"description"`
}

// TaskEventMessage - уведомление о событии для RabbitMQ.
// Публикуется после коммита транзакции, само событие уже лежит в БД.
type TaskEventMessage struct {
	TaskID      int       `json:"task_id"`
	UserID      int       `json:"user_id"`
	Event       TaskEvent `json:"event"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
