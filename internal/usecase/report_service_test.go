package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/St1cky1/taskr-service/internal/entity"
)

func TestGetUserReportEmpty(t *testing.T) {
	taskRepo := NewMockTaskRepository()
	userRepo := NewMockUserRepository()
	service := NewReportService(taskRepo, userRepo)
	user := userRepo.Add("Alice")

	report, err := service.GetUserReport(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserReport() error = %v", err)
	}
	if report.Created != 0 || report.Assigned != 0 || report.Completed != 0 || report.Incompleted != 0 {
		t.Errorf("report = %+v, want all zeros", report)
	}
}

func TestGetUserReport(t *testing.T) {
	taskRepo := NewMockTaskRepository()
	categoryRepo := NewMockCategoryRepository()
	userRepo := NewMockUserRepository()
	taskService := NewTaskService(taskRepo, categoryRepo, userRepo, taskRepo, &MockEventPublisher{})
	reportService := NewReportService(taskRepo, userRepo)

	alice := userRepo.Add("Alice")
	bob := userRepo.Add("Bob")
	category := categoryRepo.Add("Backend")

	// Алиса создала одну задачу, Боб - две; обе задачи Боба назначены на Алису,
	// одна из них завершена
	mustCreateTask(t, taskService, category.ID, alice.ID)
	bobTask1 := mustCreateTask(t, taskService, category.ID, bob.ID)
	bobTask2 := mustCreateTask(t, taskService, category.ID, bob.ID)

	ctx := context.Background()
	if _, err := taskService.AssignTask(ctx, bobTask1.ID, bob.ID, &alice.ID); err != nil {
		t.Fatalf("AssignTask() error = %v", err)
	}
	if _, err := taskService.AssignTask(ctx, bobTask2.ID, bob.ID, &alice.ID); err != nil {
		t.Fatalf("AssignTask() error = %v", err)
	}
	if _, err := taskService.ChangeTaskStatus(ctx, bobTask1.ID, alice.ID, entity.StatusDone); err != nil {
		t.Fatalf("ChangeTaskStatus() error = %v", err)
	}
	if _, err := taskService.ChangeTaskStatus(ctx, bobTask2.ID, alice.ID, entity.StatusInProgress); err != nil {
		t.Fatalf("ChangeTaskStatus() error = %v", err)
	}
	report, err := reportService.GetUserReport(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUserReport() error = %v", err)
	}

	if report.Created != 1 {
		t.Errorf("Created = %d, want 1", report.Created)
	}
	if report.Assigned != 2 {
		t.Errorf("Assigned = %d, want 2", report.Assigned)
	}
	if report.Completed != 1 {
		t.Errorf("Completed = %d, want 1", report.Completed)
	}
	if report.Incompleted != 1 {
		t.Errorf("Incompleted = %d, want 1", report.Incompleted)
	}
}

func TestGetUserReportUserNotFound(t *testing.T) {
	service := NewReportService(NewMockTaskRepository(), NewMockUserRepository())

	_, err := service.GetUserReport(context.Background(), 42)
	if !errors.Is(err, entity.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
