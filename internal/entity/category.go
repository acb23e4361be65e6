package entity

import "time"

type TaskCategory struct {
	ID          int       `json:"id"`
	CreatedOn   time.Time `json:"created_on"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// валидация
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=300"`
}
