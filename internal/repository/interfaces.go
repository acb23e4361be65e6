package repository

import (
	"context"
	"time"

	"github.com/St1cky1/taskr-service/internal/entity"
)

// ITaskRepository - интерфейс для TaskRepository.
// Методы *WithEvent выполняют мутацию задачи и вставку записи журнала
// в одной транзакции: либо коммитятся обе, либо ни одной.
type ITaskRepository interface {
	List(ctx context.Context, limit, offset int) ([]entity.Task, int, error)
	GetByID(ctx context.Context, id int) (*entity.Task, error)
	CreateWithEvent(ctx context.Context, task *entity.Task, event *entity.TaskEventLog) (*entity.Task, error)
	UpdateWithEvent(ctx context.Context, id int, updates map[string]interface{}, event *entity.TaskEventLog) (*entity.Task, error)
	SetAssigneeWithEvent(ctx context.Context, id int, assigneeID *int, event *entity.TaskEventLog) (*entity.Task, error)
	SetStatusWithEvent(ctx context.Context, id int, status entity.TaskStatus, event *entity.TaskEventLog) (*entity.Task, error)
	Delete(ctx context.Context, id int) error
	CountByCategory(ctx context.Context, categoryID int) (int, error)
	GetUserReport(ctx context.Context, userID int) (*entity.UserReport, error)
}

// ICategoryRepository - интерфейс для CategoryRepository
type ICategoryRepository interface {
	Create(ctx context.Context, category *entity.TaskCategory) (*entity.TaskCategory, error)
	GetByID(ctx context.Context, id int) (*entity.TaskCategory, error)
	List(ctx context.Context) ([]entity.TaskCategory, error)
	Delete(ctx context.Context, id int) error
}

// ITaskEventLogRepository - интерфейс для TaskEventLogRepository
type ITaskEventLogRepository interface {
	ListByTaskID(ctx context.Context, taskID int) ([]entity.TaskEventLog, error)
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error)
}

// IRefreshTokenRepository - интерфейс для RefreshTokenRepository
type IRefreshTokenRepository interface {
	Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, userID int) error
	CleanupExpired(ctx context.Context) error
}
