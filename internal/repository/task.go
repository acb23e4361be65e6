package repository

import (
	"context"
	"strconv"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, name, description, category_id, priority, status, reporter_id, assignee_id, created_on, modified_on`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&task.CategoryID,
		&task.Priority,
		&task.Status,
		&task.ReporterID,
		&task.AssigneeID,
		&task.CreatedOn,
		&task.ModifiedOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// List - постраничный список задач, порядок по created_on по возрастанию
func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]entity.Task, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM "task"`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
	SELECT ` + taskColumns + `
	FROM "task"
	ORDER BY created_on ASC
	LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		var task entity.Task
		err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.Description,
			&task.CategoryID,
			&task.Priority,
			&task.Status,
			&task.ReporterID,
			&task.AssigneeID,
			&task.CreatedOn,
			&task.ModifiedOn,
		)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	return tasks, total, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id int) (*entity.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM "task"
	WHERE id = $1
	`
	return scanTask(r.db.QueryRow(ctx, query, id))
}

// CreateWithEvent - создание задачи вместе с записью журнала в одной транзакции
func (r *TaskRepository) CreateWithEvent(ctx context.Context, task *entity.Task, event *entity.TaskEventLog) (*entity.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
	INSERT INTO "task" (name, description, category_id, priority, status, reporter_id, assignee_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + taskColumns + `
	`

	created, err := scanTask(tx.QueryRow(ctx, query,
		task.Name,
		task.Description,
		task.CategoryID,
		task.Priority,
		task.Status,
		task.ReporterID,
		task.AssigneeID,
	))
	if err != nil {
		return nil, err
	}

	event.TaskID = created.ID
	if err := insertTaskEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateWithEvent - частичное обновление задачи, запись журнала пишется в той же
// транзакции. modified_on обновляется всегда, даже если updates пустой.
func (r *TaskRepository) UpdateWithEvent(ctx context.Context, id int, updates map[string]interface{}, event *entity.TaskEventLog) (*entity.Task, error) {
	// Динамически строим SET часть запроса
	setClause := ""
	args := []interface{}{}
	argIndex := 1

	for field, value := range updates {
		setClause += field + " = $" + strconv.Itoa(argIndex) + ", "
		args = append(args, value)
		argIndex++
	}
	setClause += "modified_on = CURRENT_TIMESTAMP"

	query := `
	UPDATE "task"
	SET ` + setClause + `
	WHERE id = $` + strconv.Itoa(argIndex) + `
	RETURNING ` + taskColumns + `
	`
	args = append(args, id)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := scanTask(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	event.TaskID = updated.ID
	if err := insertTaskEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

// SetAssigneeWithEvent - назначение или снятие исполнителя с записью журнала
func (r *TaskRepository) SetAssigneeWithEvent(ctx context.Context, id int, assigneeID *int, event *entity.TaskEventLog) (*entity.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
	UPDATE "task"
	SET assignee_id = $1, modified_on = CURRENT_TIMESTAMP
	WHERE id = $2
	RETURNING ` + taskColumns + `
	`

	updated, err := scanTask(tx.QueryRow(ctx, query, assigneeID, id))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	event.TaskID = updated.ID
	if err := insertTaskEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

// SetStatusWithEvent - смена статуса с записью журнала
func (r *TaskRepository) SetStatusWithEvent(ctx context.Context, id int, status entity.TaskStatus, event *entity.TaskEventLog) (*entity.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
	UPDATE "task"
	SET status = $1, modified_on = CURRENT_TIMESTAMP
	WHERE id = $2
	RETURNING ` + taskColumns + `
	`

	updated, err := scanTask(tx.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	event.TaskID = updated.ID
	if err := insertTaskEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete - удаление задачи, записи журнала удаляются каскадом на стороне БД
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM "task" WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountByCategory - сколько задач ссылается на категорию
func (r *TaskRepository) CountByCategory(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM "task" WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

// GetUserReport - счетчики задач пользователя одним запросом по текущему
// состоянию задач
func (r *TaskRepository) GetUserReport(ctx context.Context, userID int) (*entity.UserReport, error) {
	query := `
	SELECT
		COUNT(*) FILTER (WHERE reporter_id = $1),
		COUNT(*) FILTER (WHERE assignee_id = $1),
		COUNT(*) FILTER (WHERE assignee_id = $1 AND status = $2),
		COUNT(*) FILTER (WHERE assignee_id = $1 AND status IN ($3, $4))
	FROM "task"
	`

	var report entity.UserReport
	err := r.db.QueryRow(ctx, query,
		userID,
		entity.StatusDone,
		entity.StatusTodo,
		entity.StatusInProgress,
	).Scan(
		&report.Created,
		&report.Assigned,
		&report.Completed,
		&report.Incompleted,
	)
	if err != nil {
		return nil, err
	}

	return &report, nil
}
