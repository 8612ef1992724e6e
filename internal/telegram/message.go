package telegram

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tuitonline/Main/internal/deepseek"
)

// maxMessageLen is Telegram's practical per-message limit; longer answers are
// sliced into consecutive chunks.
const maxMessageLen = 4000

const personaPrompt = "Eres un experto en redes WiFi y tecnología de consumo. Responde de forma sencilla, con humor y sin tecnicismos."

const (
	apologyTransport = "🔌 ¡Ups! Estoy teniendo problemas para conectar con mi cerebro. ¿Podrías intentarlo más tarde?"
	apologyMalformed = "🧠 ¡Vaya! Mi cerebro respondió de forma inesperada. ¿Puedes reformular tu pregunta?"
	apologyGeneric   = "⚠️ ¡Ay! Algo salió mal. ¿Podrías intentarlo de nuevo?"
)

func (b *Bot) handleTextMessage(id string, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	question := message.Text

	log.Printf("[%s] user %d (%s) in chat %d: %s",
		id, message.From.ID, message.From.UserName, chatID, preview(question))

	b.sendTyping(chatID)

	b.recordMessage(id, chatID, message.From.ID, deepseek.RoleUser, question)

	start := time.Now()
	answer, err := b.ai.Chat(context.Background(), []deepseek.Message{
		{Role: deepseek.RoleSystem, Content: personaPrompt},
		{Role: deepseek.RoleUser, Content: question},
	})
	if err != nil {
		log.Printf("[%s] completion failed: %v", id, err)
		b.sendMessage(chatID, apologyFor(err))
		return
	}

	log.Printf("[%s] completion in %v", id, time.Since(start))

	answer = strings.TrimSpace(answer)
	b.recordMessage(id, chatID, message.From.ID, deepseek.RoleAssistant, answer)

	for _, chunk := range splitText(answer, maxMessageLen) {
		b.sendTyping(chatID)
		b.sendMessage(chatID, chunk)
	}
}

// apologyFor maps each provider error class to its user-facing reply. Every
// per-message failure ends here; nothing propagates past the handler.
func apologyFor(err error) string {
	var transportErr *deepseek.TransportError
	var statusErr *deepseek.StatusError
	var malformedErr *deepseek.MalformedError

	switch {
	case errors.As(err, &transportErr), errors.As(err, &statusErr):
		return apologyTransport
	case errors.As(err, &malformedErr):
		return apologyMalformed
	default:
		return apologyGeneric
	}
}

func preview(s string) string {
	const max = 50
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
