package telegram

import (
	"context"
	"fmt"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/tuitonline/Main/internal/config"
	"github.com/tuitonline/Main/internal/deepseek"
	"github.com/tuitonline/Main/internal/models"
	"github.com/tuitonline/Main/internal/repository"
)

// botAPI is the slice of tgbotapi.BotAPI the bot uses. Tests swap in a fake.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(cfg tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// completer is the completion-provider capability the handlers need.
type completer interface {
	Chat(ctx context.Context, messages []deepseek.Message) (string, error)
}

type Bot struct {
	api      botAPI
	ai       completer
	token    string
	self     string
	users    *repository.UserRepository    // nil when persistence is disabled
	messages *repository.MessageRepository // nil when persistence is disabled

	// fetches a Telegram file URL and returns its extracted text; swapped
	// out in tests
	extractPDF func(fileURL string) (string, error)

	// one mutex per chat so messages within a chat are handled in arrival
	// order while chats stay concurrent
	chatLocks sync.Map
}

func New(cfg config.Telegram, ai *deepseek.Client, users *repository.UserRepository, messages *repository.MessageRepository) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = false

	return &Bot{
		api:        api,
		ai:         ai,
		token:      cfg.Token,
		self:       api.Self.UserName,
		users:      users,
		messages:   messages,
		extractPDF: defaultExtractPDF,
	}, nil
}

func (b *Bot) Run() error {
	log.Printf("Bot @%s started, listening for updates", b.self)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		go b.handleUpdate(update)
	}

	return nil
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	message := update.Message
	id := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] panic in handler: %v", id, r)
			b.sendMessage(message.Chat.ID, apologyGeneric)
		}
	}()

	mu, _ := b.chatLocks.LoadOrStore(message.Chat.ID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	b.recordUser(id, message.From)

	switch {
	case message.IsCommand():
		b.handleCommand(id, message)
	case message.Text != "":
		b.handleTextMessage(id, message)
	case message.Document != nil:
		b.handleDocument(id, message)
	default:
		b.sendMessage(message.Chat.ID, "Por ahora solo entiendo texto, documentos PDF y comandos.")
	}
}

// sendMessage sends a plain-text reply. Transport errors are logged and
// swallowed so a failed send never interrupts the conversation.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)

	if _, err := b.api.Request(action); err != nil {
		log.Printf("Failed to send typing action to chat %d: %v", chatID, err)
	}
}

func (b *Bot) recordUser(id string, from *tgbotapi.User) {
	if b.users == nil || from == nil {
		return
	}

	if _, err := b.users.CreateOrUpdate(context.Background(), extractTelegramUser(from)); err != nil {
		log.Printf("[%s] failed to save user %d: %v", id, from.ID, err)
	}
}

func (b *Bot) recordMessage(id string, chatID, userID int64, role, content string) {
	if b.messages == nil {
		return
	}

	msg := &models.Message{
		ChatID:  chatID,
		UserID:  userID,
		Role:    role,
		Content: content,
	}
	if err := b.messages.Save(context.Background(), msg); err != nil {
		log.Printf("[%s] failed to save message for chat %d: %v", id, chatID, err)
	}
}

func extractTelegramUser(from *tgbotapi.User) models.TelegramUser {
	var username, lastName, languageCode *string

	if from.UserName != "" {
		username = &from.UserName
	}
	if from.LastName != "" {
		lastName = &from.LastName
	}
	if from.LanguageCode != "" {
		languageCode = &from.LanguageCode
	}

	return models.TelegramUser{
		ID:           from.ID,
		Username:     username,
		FirstName:    from.FirstName,
		LastName:     lastName,
		IsBot:        from.IsBot,
		LanguageCode: languageCode,
	}
}

func RunTelegramBot(cfg *config.Config, ai *deepseek.Client, users *repository.UserRepository, messages *repository.MessageRepository) {
	bot, err := New(cfg.Telegram, ai, users, messages)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := bot.Run(); err != nil {
		log.Fatalf("Bot failed: %v", err)
	}
}
