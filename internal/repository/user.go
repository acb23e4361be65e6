package repository

import (
	"context"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateWithAuth - создаем пользователя с email и хешем пароля
func (r *UserRepository) CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	query := `
	INSERT INTO "user" (name, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, name, email, password_hash, is_active, last_login, created_at, updated_at
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, name, email, passwordHash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// получаем данные по id
func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	query := `
	SELECT id, name, email, password_hash, is_active, last_login, created_at, updated_at
	FROM "user"
	WHERE id = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// получаем данные по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
	SELECT id, name, email, password_hash, is_active, last_login, created_at, updated_at
	FROM "user"
	WHERE email = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// List - получаем всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	query := `
	SELECT id, name, email, password_hash, is_active, last_login, created_at, updated_at
	FROM "user"
	ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.IsActive,
			&user.LastLogin,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update - обновляем пользователя
func (r *UserRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error) {
	query := `
	UPDATE "user"
	SET name = COALESCE($1, name),
	    last_login = COALESCE($2, last_login),
	    updated_at = CURRENT_TIMESTAMP
	WHERE id = $3
	RETURNING id, name, email, password_hash, is_active, last_login, created_at, updated_at
	`

	var name interface{} = updates["name"]
	var lastLogin interface{} = updates["last_login"]

	var user entity.User
	err := r.db.QueryRow(ctx, query, name, lastLogin, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
