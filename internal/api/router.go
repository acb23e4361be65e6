package api

import (
	"net/http"

	"github.com/St1cky1/taskr-service/internal/api/handlers"
	apimw "github.com/St1cky1/taskr-service/internal/api/middleware"
	"github.com/St1cky1/taskr-service/internal/infrastructure/auth"
	"github.com/St1cky1/taskr-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	taskService *usecase.TaskService,
	categoryService *usecase.CategoryService,
	reportService *usecase.ReportService,
	userService *usecase.UserService,
	authService *usecase.AuthService,
	jwtManager *auth.JWTManager,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	reportHandler := handlers.NewReportHandler(reportService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые эндпоинты
		r.Get("/check", checkpoint)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Group(func(r chi.Router) {
				r.Use(apimw.Authenticator(jwtManager))
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Все остальное только для аутентифицированных
		r.Group(func(r chi.Router) {
			r.Use(apimw.Authenticator(jwtManager))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Put("/", taskHandler.UpdateTask)
					r.Delete("/", taskHandler.DeleteTask)
					r.Post("/assign", taskHandler.AssignTask)
					r.Post("/changestatus", taskHandler.ChangeStatus)
					r.Get("/eventlogs", taskHandler.ListEventLogs)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.ListCategories)
				r.Post("/", categoryHandler.CreateCategory)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", categoryHandler.GetCategory)
					r.Delete("/", categoryHandler.DeleteCategory)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Get("/{id}", userHandler.GetUser)
				r.Get("/{id}/reports", reportHandler.UserReport)
			})

			r.Get("/reports", reportHandler.MyReport)
		})
	})

	return r
}

func checkpoint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "This is a test message"}`))
}
