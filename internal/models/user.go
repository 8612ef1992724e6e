package models

import "time"

type User struct {
	ID           int64
	Username     *string
	FirstName    string
	LastName     *string
	IsBot        bool
	LanguageCode *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSeen     time.Time
}

// TelegramUser is the subset of the Telegram user object the bot records.
type TelegramUser struct {
	ID           int64
	Username     *string
	FirstName    string
	LastName     *string
	IsBot        bool
	LanguageCode *string
}
