package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tuitonline/Main/internal/models"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateOrUpdate(ctx context.Context, tu models.TelegramUser) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (id, username, first_name, last_name, is_bot, language_code, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_bot = EXCLUDED.is_bot,
			language_code = EXCLUDED.language_code,
			updated_at = CURRENT_TIMESTAMP,
			last_seen = CURRENT_TIMESTAMP
		RETURNING id, username, first_name, last_name, is_bot, language_code, created_at, updated_at, last_seen`

	err := r.db.QueryRow(ctx, query,
		tu.ID,
		tu.Username,
		tu.FirstName,
		tu.LastName,
		tu.IsBot,
		tu.LanguageCode,
	).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.IsBot,
		&user.LanguageCode,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastSeen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create or update user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}

	query := `SELECT id, username, first_name, last_name, is_bot, language_code, created_at, updated_at, last_seen FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.IsBot,
		&user.LanguageCode,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastSeen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
