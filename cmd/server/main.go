package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/taskr-service/internal/api"
	"github.com/St1cky1/taskr-service/internal/entity"
	infraauth "github.com/St1cky1/taskr-service/internal/infrastructure/auth"
	"github.com/St1cky1/taskr-service/internal/infrastructure/client"
	"github.com/St1cky1/taskr-service/internal/repository"
	"github.com/St1cky1/taskr-service/internal/usecase"
	"github.com/St1cky1/taskr-service/internal/worker"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var wg sync.WaitGroup

	dbConfig := client.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  "disable",
	}

	rabbitMQURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASSWORD"),
		os.Getenv("RABBITMQ_HOST"),
		os.Getenv("RABBITMQ_PORT"))

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	// Запускаем миграции
	if err := runMigrations(dbConfig.ConnString()); err != nil {
		log.Fatal("❌ Ошибка миграций:", err)
	}

	// Подключаемся к БД
	dbClient, err := client.NewPostgresClient(dbConfig)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к БД:", err)
	}
	defer dbClient.Close()
	fmt.Println("✅ Подключение к БД установлено")

	db := dbClient.GetPool()

	// Подключаемся к RabbitMQ
	rabbitMQ, err := client.NewRabbitMQClient(rabbitMQURL)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к RabbitMQ:", err)
	}
	defer rabbitMQ.Close()
	fmt.Println("✅ Подключение к RabbitMQ установлено")

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewTaskEventLogRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Инициализируем сервисы
	jwtManager := infraauth.NewJWTManager()
	passwordManager := infraauth.NewPasswordManager()
	taskService := usecase.NewTaskService(taskRepo, categoryRepo, userRepo, eventRepo, rabbitMQ)
	categoryService := usecase.NewCategoryService(categoryRepo, taskRepo)
	reportService := usecase.NewReportService(taskRepo, userRepo)
	userService := usecase.NewUserService(userRepo)
	authService := usecase.NewAuthService(userRepo, refreshTokenRepo, passwordManager, jwtManager)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Запускаем воркер уведомлений о событиях задач
	eventWorker := worker.NewEventWorker(rabbitMQURL, func(ctx context.Context, message *entity.TaskEventMessage) error {
		log.Printf("Событие задачи: %s (task=%d, user=%d): %s",
			message.Event, message.TaskID, message.UserID, message.Description)
		return nil
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Println("Запуск Event Worker...")
		eventWorker.Start(workerCtx)
	}()

	// Периодически чистим истекшие refresh токены
	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanupExpiredTokens(workerCtx, refreshTokenRepo)
	}()

	// Запускаем HTTP сервер
	router := api.NewRouter(taskService, categoryService, reportService, userService, authService, jwtManager)
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Printf("Запуск HTTP сервера на порту %s...\n", httpPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	}()

	fmt.Println("✅ taskr-service готов к работе!")
	fmt.Printf(" API: http://localhost:%s/api/v1/tasks\n", httpPort)
	fmt.Println("Для остановки нажмите Ctrl+C")

	// Ждем сигнал завершения
	waitForShutdown(server, workerCancel)
	wg.Wait()
	fmt.Println("✅ Приложение завершено корректно")
}

// Периодическая очистка истекших refresh токенов
func cleanupExpiredTokens(ctx context.Context, refreshTokenRepo repository.IRefreshTokenRepository) {
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refreshTokenRepo.CleanupExpired(ctx); err != nil {
				log.Printf("❌ Ошибка очистки refresh токенов: %v", err)
			}
		}
	}
}

func waitForShutdown(server *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Ожидаем сигнал завершения (Ctrl+C)...")
	<-sigChan

	fmt.Println("Завершение работы...")

	workerCancel()

	// Даем время для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP сервера: %v", err)
	}
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	fmt.Println("✅ Миграции выполнены успешно")
	return nil
}
