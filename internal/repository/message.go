package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tuitonline/Main/internal/models"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Save(ctx context.Context, msg *models.Message) error {
	query := `INSERT INTO messages (chat_id, user_id, role, content) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, query, msg.ChatID, msg.UserID, msg.Role, msg.Content); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

func (r *MessageRepository) CountByChat(ctx context.Context, chatID int64) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE chat_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, chatID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}
