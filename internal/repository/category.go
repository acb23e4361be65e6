package repository

import (
	"context"
	"errors"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// создаем категорию
func (r *CategoryRepository) Create(ctx context.Context, category *entity.TaskCategory) (*entity.TaskCategory, error) {
	query := `
	INSERT INTO "task_category" (name, description)
	VALUES ($1, $2)
	RETURNING id, name, description, created_on
	`

	var created entity.TaskCategory
	err := r.db.QueryRow(ctx, query, category.Name, category.Description).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.CreatedOn,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*entity.TaskCategory, error) {
	query := `
	SELECT id, name, description, created_on
	FROM "task_category"
	WHERE id = $1
	`

	var category entity.TaskCategory
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}

// List - все категории по порядку создания
func (r *CategoryRepository) List(ctx context.Context) ([]entity.TaskCategory, error) {
	query := `
	SELECT id, name, description, created_on
	FROM "task_category"
	ORDER BY created_on ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entity.TaskCategory
	for rows.Next() {
		var category entity.TaskCategory
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedOn,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Delete - удаление категории. FK на task стоит в RESTRICT, нарушение
// отдаем как ErrCategoryInUse
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM "task_category" WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return entity.ErrCategoryInUse
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
