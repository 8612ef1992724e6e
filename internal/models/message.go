package models

import "time"

// Message is one recorded conversation turn. The log is a write-only audit
// trail: prompts sent to the model never include history.
type Message struct {
	ChatID    int64
	UserID    int64
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
}
