package usecase

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/St1cky1/taskr-service/internal/repository"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EventPublisher - интерфейс для публикации уведомлений о событиях в RabbitMQ.
// Каноническая запись журнала уже лежит в БД, сюда уходит только зеркало
// после коммита.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, message *entity.TaskEventMessage) error
}

// TaskService - ядро жизненного цикла задачи: валидирует действие,
// применяет мутацию и пишет запись журнала, все в одной транзакции
type TaskService struct {
	taskRepo     repository.ITaskRepository
	categoryRepo repository.ICategoryRepository
	userRepo     repository.IUserRepository
	eventRepo    repository.ITaskEventLogRepository
	publisher    EventPublisher
	validate     *validator.Validate
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	categoryRepo repository.ICategoryRepository,
	userRepo repository.IUserRepository,
	eventRepo repository.ITaskEventLogRepository,
	publisher EventPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		publisher:    publisher,
		validate:     newValidator(),
	}
}

// ListTasks - постраничный список задач по возрастанию created_on
func (s *TaskService) ListTasks(ctx context.Context, page, pageSize int) (*entity.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	tasks, total, err := s.taskRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}

	return &entity.TaskPage{Count: total, Results: tasks}, nil
}

// CreateTask - создание задачи. reporter всегда берется из acting user,
// status всегда TODO, assignee всегда пустой - что бы клиент ни прислал.
func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest, actorID int) (*entity.Task, error) {
	verrs := entity.NewValidationError()
	checkStruct(s.validate, req, verrs)

	priority := entity.PriorityMedium
	if req.Priority != nil {
		if !req.Priority.Valid() {
			verrs.Add("priority", fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(int(*req.Priority))))
		} else {
			priority = *req.Priority
		}
	}

	if req.Category != 0 {
		category, err := s.categoryRepo.GetByID(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			verrs.Add("category", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(req.Category)))
		}
	}

	if !verrs.Empty() {
		return nil, verrs
	}

	task := &entity.Task{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.Category,
		Priority:    priority,
		Status:      entity.StatusTodo,
		ReporterID:  actorID,
		AssigneeID:  nil,
	}

	event := &entity.TaskEventLog{
		UserID:      actorID,
		Event:       entity.EventCreated,
		Description: "Task created.",
	}

	created, err := s.taskRepo.CreateWithEvent(ctx, task, event)
	if err != nil {
		return nil, err
	}

	s.publishEvent(event)

	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

// UpdateTask - частичное обновление. Разрешены только name, description,
// category и priority; reporter/assignee/status в структуру запроса не
// попадают и молча отбрасываются еще на декодировании. Запись EDITED
// пишется всегда, даже если ни одно поле фактически не изменилось.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, actorID int, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	verrs := entity.NewValidationError()
	updates := make(map[string]interface{})

	if req.Name != nil {
		switch {
		case *req.Name == "":
			verrs.Add("name", "This field may not be blank.")
		case utf8.RuneCountInString(*req.Name) > 300:
			verrs.Add("name", "Ensure this field has no more than 300 characters.")
		default:
			updates["name"] = *req.Name
		}
	}

	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > 2000 {
			verrs.Add("description", "Ensure this field has no more than 2000 characters.")
		} else {
			updates["description"] = *req.Description
		}
	}

	if req.Category != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			verrs.Add("category", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(*req.Category)))
		} else {
			updates["category_id"] = *req.Category
		}
	}

	if req.Priority != nil {
		if !req.Priority.Valid() {
			verrs.Add("priority", fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(int(*req.Priority))))
		} else {
			updates["priority"] = *req.Priority
		}
	}

	if !verrs.Empty() {
		return nil, verrs
	}

	event := &entity.TaskEventLog{
		UserID:      actorID,
		Event:       entity.EventEdited,
		Description: "Task edited.",
	}

	updated, err := s.taskRepo.UpdateWithEvent(ctx, taskID, updates, event)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.publishEvent(event)

	return updated, nil
}

// DeleteTask - удаление задачи вместе с ее журналом (каскад).
// Событие не пишется: сущность и ее журнал исчезают вместе.
func (s *TaskService) DeleteTask(ctx context.Context, taskID int) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return entity.ErrTaskNotFound
	}

	return s.taskRepo.Delete(ctx, taskID)
}

// AssignTask - назначение исполнителя. Пустой userID означает снятие.
// Если целевой исполнитель совпадает с текущим (включая оба пустых) -
// ErrNoChange, журнал не растет.
func (s *TaskService) AssignTask(ctx context.Context, taskID, actorID int, userID *int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	var target *entity.User
	if userID != nil {
		target, err = s.userRepo.GetByID(ctx, *userID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, entity.ErrUserNotFound
		}
	}

	// Сравниваем с текущим исполнителем
	if task.AssigneeID == nil && userID == nil {
		return nil, entity.ErrNoChange
	}
	if task.AssigneeID != nil && userID != nil && *task.AssigneeID == *userID {
		return nil, entity.ErrNoChange
	}

	assignedTo := "none"
	if target != nil {
		assignedTo = target.Name
	}

	event := &entity.TaskEventLog{
		UserID:      actorID,
		Event:       entity.EventAssigned,
		Description: fmt.Sprintf("Task assigned to %s.", assignedTo),
	}

	updated, err := s.taskRepo.SetAssigneeWithEvent(ctx, taskID, userID, event)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.publishEvent(event)

	return updated, nil
}

// ChangeTaskStatus - смена статуса. Переходы между тремя значениями
// свободные, совпадение с текущим статусом - ErrNoChange.
func (s *TaskService) ChangeTaskStatus(ctx context.Context, taskID, actorID int, newStatus entity.TaskStatus) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	if !newStatus.Valid() {
		verrs := entity.NewValidationError()
		verrs.Add("status", fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(int(newStatus))))
		return nil, verrs
	}

	if newStatus == task.Status {
		return nil, entity.ErrNoChange
	}

	event := &entity.TaskEventLog{
		UserID:      actorID,
		Event:       entity.EventStatusChanged,
		Description: fmt.Sprintf("Task status changed to %q.", newStatus.String()),
	}

	updated, err := s.taskRepo.SetStatusWithEvent(ctx, taskID, newStatus, event)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.publishEvent(event)

	return updated, nil
}

// ListTaskEvents - журнал задачи в хронологическом порядке
func (s *TaskService) ListTaskEvents(ctx context.Context, taskID int) ([]entity.TaskEventLog, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	events, err := s.eventRepo.ListByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []entity.TaskEventLog{}
	}
	return events, nil
}

// publishEvent - асинхронная отправка уведомления в RabbitMQ после коммита,
// ошибка отправки не влияет на результат операции
func (s *TaskService) publishEvent(event *entity.TaskEventLog) {
	message := &entity.TaskEventMessage{
		TaskID:      event.TaskID,
		UserID:      event.UserID,
		Event:       event.Event,
		Description: event.Description,
		Timestamp:   time.Now(),
	}

	go func() {
		if err := s.publisher.PublishTaskEvent(context.Background(), message); err != nil {
			log.Printf("❌ Ошибка отправки события в RabbitMQ: %v", err)
		}
	}()
}
