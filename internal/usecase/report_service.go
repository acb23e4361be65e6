package usecase

import (
	"context"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/St1cky1/taskr-service/internal/repository"
)

// ReportService - отчеты по задачам пользователя. Только чтение,
// считает по текущему состоянию задач, журнал событий не трогает.
type ReportService struct {
	taskRepo repository.ITaskRepository
	userRepo repository.IUserRepository
}

func NewReportService(
	taskRepo repository.ITaskRepository,
	userRepo repository.IUserRepository,
) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// GetUserReport - created/assigned/completed/incompleted для пользователя.
// completed + incompleted всегда равно assigned: статус принимает ровно
// три значения.
func (s *ReportService) GetUserReport(ctx context.Context, userID int) (*entity.UserReport, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	return s.taskRepo.GetUserReport(ctx, userID)
}
