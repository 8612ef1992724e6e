package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tuitonline/Main/internal/models"
)

const welcomeMsg = "🎙️ ¡Bienvenido al conversatorio de tecnología!\n" +
	"Hoy respondemos: *Internet lento, WiFi débil... ¿Es culpa del router o del vecino?*\n\n" +
	"Hazme cualquier pregunta sobre WiFi, velocidad de internet o cómo mejorar tu red."

const helpMsg = `Comandos:
/start - Mensaje de bienvenida.
/help - Muestra esta ayuda.
/profile - Muestra tu perfil.
/stats - Cuántos mensajes llevamos en este chat.

También puedes enviarme un PDF y te lo resumo.`

func (b *Bot) handleCommand(id string, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	log.Printf("[%s] command /%s from user %d", id, message.Command(), message.From.ID)

	switch message.Command() {
	case "start":
		b.sendMarkdown(chatID, welcomeMsg)

	case "help":
		b.sendMessage(chatID, helpMsg)

	case "profile":
		b.handleProfileCommand(id, chatID, message.From.ID)

	case "stats":
		b.handleStatsCommand(id, chatID)

	default:
		b.sendMessage(chatID, "No conozco ese comando. Usa /help para ver los disponibles.")
	}
}

func (b *Bot) handleProfileCommand(id string, chatID, userID int64) {
	if b.users == nil {
		b.sendMessage(chatID, "El perfil no está disponible en este momento.")
		return
	}

	user, err := b.users.GetByID(context.Background(), userID)
	if err != nil {
		log.Printf("[%s] failed to get profile for user %d: %v", id, userID, err)
		b.sendMessage(chatID, "No pude consultar tu perfil ahora mismo.")
		return
	}

	b.sendMessage(chatID, formatProfile(user))
}

func formatProfile(user *models.User) string {
	return fmt.Sprintf(`Tu perfil

ID: %d
Nombre: %s %s
Usuario: %s
Idioma: %s
Miembro desde: %s
Última visita: %s`,
		user.ID,
		user.FirstName,
		orNA(user.LastName),
		orNA(user.Username),
		orNA(user.LanguageCode),
		user.CreatedAt.Format("2006-01-02"),
		user.LastSeen.Format("2006-01-02 15:04:05"),
	)
}

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func (b *Bot) handleStatsCommand(id string, chatID int64) {
	if b.messages == nil {
		b.sendMessage(chatID, "Las estadísticas no están disponibles en este momento.")
		return
	}

	count, err := b.messages.CountByChat(context.Background(), chatID)
	if err != nil {
		log.Printf("[%s] failed to count messages for chat %d: %v", id, chatID, err)
		b.sendMessage(chatID, "No pude consultar las estadísticas ahora mismo.")
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("Llevamos %d mensajes en este chat.", count))
}
