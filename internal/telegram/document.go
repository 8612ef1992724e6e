package telegram

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tuitonline/Main/internal/deepseek"
	"github.com/tuitonline/Main/internal/handlers"
)

// maxPDFPromptLen caps how much extracted text goes into the summary prompt.
const maxPDFPromptLen = 12000

const summaryPrefix = "Resume este documento en pocas palabras:\n\n"

func (b *Bot) handleDocument(id string, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".pdf") {
		b.sendMessage(chatID, "Por ahora solo puedo leer archivos PDF.")
		return
	}

	log.Printf("[%s] document %q from user %d", id, doc.FileName, message.From.ID)

	b.sendTyping(chatID)

	tgFile, err := b.api.GetFile(tgbotapi.FileConfig{FileID: doc.FileID})
	if err != nil {
		log.Printf("[%s] failed to get file: %v", id, err)
		b.sendMessage(chatID, "No pude obtener el archivo de Telegram.")
		return
	}

	text, err := b.extractPDF(tgFile.Link(b.token))
	if err != nil {
		log.Printf("[%s] failed to read pdf: %v", id, err)
		b.sendMessage(chatID, "No pude leer el contenido del PDF.")
		return
	}

	if runes := []rune(text); len(runes) > maxPDFPromptLen {
		text = string(runes[:maxPDFPromptLen])
	}

	b.sendTyping(chatID)

	summary, err := b.ai.Chat(context.Background(), []deepseek.Message{
		{Role: deepseek.RoleSystem, Content: personaPrompt},
		{Role: deepseek.RoleUser, Content: summaryPrefix + text},
	})
	if err != nil {
		log.Printf("[%s] completion failed: %v", id, err)
		b.sendMessage(chatID, apologyFor(err))
		return
	}

	summary = strings.TrimSpace(summary)
	b.recordMessage(id, chatID, message.From.ID, deepseek.RoleAssistant, summary)

	for _, chunk := range splitText(summary, maxMessageLen) {
		b.sendTyping(chatID)
		b.sendMessage(chatID, chunk)
	}
}

// defaultExtractPDF downloads the file into a fresh temp file and extracts
// its text. The local name never derives from the Telegram-supplied file
// name, which may carry path separators.
func defaultExtractPDF(fileURL string) (string, error) {
	tmp, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := handlers.DownloadFile(path, fileURL); err != nil {
		return "", err
	}

	return handlers.ExtractPDFText(path)
}
