package repository

import (
	"context"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskEventLogRepository struct {
	db *pgxpool.Pool
}

func NewTaskEventLogRepository(db *pgxpool.Pool) *TaskEventLogRepository {
	return &TaskEventLogRepository{
		db: db,
	}
}

// insertTaskEvent - вставка записи журнала внутри транзакции мутации задачи
func insertTaskEvent(ctx context.Context, tx pgx.Tx, event *entity.TaskEventLog) error {
	query := `
	INSERT INTO "task_event_log" (task_id, user_id, event, description)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_on
	`

	return tx.QueryRow(ctx, query,
		event.TaskID,
		event.UserID,
		event.Event,
		event.Description,
	).Scan(&event.ID, &event.CreatedOn)
}

// ListByTaskID - все события задачи в хронологическом порядке
func (r *TaskEventLogRepository) ListByTaskID(ctx context.Context, taskID int) ([]entity.TaskEventLog, error) {
	query := `
	SELECT id, task_id, user_id, event, description, created_on
	FROM "task_event_log"
	WHERE task_id = $1
	ORDER BY created_on ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []entity.TaskEventLog
	for rows.Next() {
		var event entity.TaskEventLog
		err := rows.Scan(
			&event.ID,
			&event.TaskID,
			&event.UserID,
			&event.Event,
			&event.Description,
			&event.CreatedOn,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
