package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type TaskPriority int

const (
	PriorityLow    TaskPriority = 1
	PriorityMedium TaskPriority = 2
	PriorityHigh   TaskPriority = 3
)

// Valid проверяет, что приоритет входит в закрытый набор значений
func (p TaskPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p TaskPriority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

type TaskStatus int

const (
	StatusTodo       TaskStatus = 1
	StatusInProgress TaskStatus = 2
	StatusDone       TaskStatus = 3
)

// Valid проверяет, что статус входит в закрытый набор значений
func (s TaskStatus) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

func (s TaskStatus) String() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	default:
		return "Unknown"
	}
}

type Task struct {
	ID          int          `json:"id"`
	CreatedOn   time.Time    `json:"created_on"`
	ModifiedOn  time.Time    `json:"modified_on"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CategoryID  int          `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	ReporterID  int          `json:"reporter"`
	AssigneeID  *int         `json:"assignee"`
}

// валидация
// reporter, status и assignee клиент задать не может: их нет в структуре,
// лишние поля запроса просто не читаются
type CreateTaskRequest struct {
	Name        string        `json:"name" validate:"required,max=300"`
	Description string        `json:"description" validate:"max=2000"`
	Category    int           `json:"category" validate:"required"`
	Priority    *TaskPriority `json:"priority"`
}

type UpdateTaskRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Category    *int          `json:"category"`
	Priority    *TaskPriority `json:"priority"`
}

type AssignTaskRequest struct {
	User *int
}

// UnmarshalJSON принимает {"user": 5}, {"user": "5"}, {"user": null} и
// {"user": ""} - пустое значение означает снятие исполнителя
func (r *AssignTaskRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw.User) == 0 || bytes.Equal(raw.User, []byte("null")) {
		r.User = nil
		return nil
	}

	var id int
	if err := json.Unmarshal(raw.User, &id); err == nil {
		r.User = &id
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.User, &s); err != nil {
		return err
	}
	if s == "" {
		r.User = nil
		return nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		r.User = nil
		return nil
	}
	r.User = &id
	return nil
}

type ChangeTaskStatusRequest struct {
	Status TaskStatus `json:"status"`
}

type TaskPage struct {
	Count   int    `json:"count"`
	Results []Task `json:"results"`
}
