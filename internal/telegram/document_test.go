package telegram

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"github.com/tuitonline/Main/internal/deepseek"
)

func documentMessage(chatID int64, fileName string) *tgbotapi.Message {
	m := textMessage(chatID, "")
	m.Document = &tgbotapi.Document{FileID: "file-1", FileName: fileName}
	return m
}

func TestDocument_RefusesNonPDF(t *testing.T) {
	api := &fakeAPI{}
	ai := &fakeCompleter{}
	b := newTestBot(api, ai)

	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "notas.txt")})

	texts := api.sentTexts()
	require.Len(t, texts, 1)
	require.Equal(t, "Por ahora solo puedo leer archivos PDF.", texts[0])
	require.Empty(t, ai.calls)
}

func TestDocument_GetFileFailure(t *testing.T) {
	api := &fakeAPI{fileErr: errors.New("file not found")}
	ai := &fakeCompleter{}
	b := newTestBot(api, ai)

	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "guia.pdf")})

	texts := api.sentTexts()
	require.Len(t, texts, 1)
	require.Equal(t, "No pude obtener el archivo de Telegram.", texts[0])
	require.Empty(t, ai.calls)
}

func TestDocument_ExtractFailure(t *testing.T) {
	api := &fakeAPI{}
	ai := &fakeCompleter{}
	b := newTestBot(api, ai)
	b.extractPDF = func(string) (string, error) {
		return "", errors.New("no extractable text in pdf")
	}

	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "guia.pdf")})

	texts := api.sentTexts()
	require.Len(t, texts, 1)
	require.Equal(t, "No pude leer el contenido del PDF.", texts[0])
	require.Empty(t, ai.calls)
}

func TestDocument_SummarizesAndChunks(t *testing.T) {
	summary := strings.Repeat("a", 4000) + strings.Repeat("b", 100)

	api := &fakeAPI{}
	ai := &fakeCompleter{text: summary}
	b := newTestBot(api, ai)
	b.extractPDF = func(string) (string, error) {
		return "el contenido del documento", nil
	}

	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "guia.pdf")})

	require.Len(t, ai.calls, 1)
	require.Equal(t, []deepseek.Message{
		{Role: deepseek.RoleSystem, Content: personaPrompt},
		{Role: deepseek.RoleUser, Content: summaryPrefix + "el contenido del documento"},
	}, ai.calls[0])

	texts := api.sentTexts()
	require.Len(t, texts, 2) // ceil(4100/4000)
	require.Equal(t, summary, strings.Join(texts, ""))
}

func TestDocument_TruncatesLongExtractedText(t *testing.T) {
	long := strings.Repeat("ñ", maxPDFPromptLen+500)

	api := &fakeAPI{}
	ai := &fakeCompleter{text: "resumen"}
	b := newTestBot(api, ai)
	b.extractPDF = func(string) (string, error) {
		return long, nil
	}

	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "guia.pdf")})

	require.Len(t, ai.calls, 1)
	want := summaryPrefix + strings.Repeat("ñ", maxPDFPromptLen)
	require.Equal(t, want, ai.calls[0][1].Content)
}

func TestDocument_CompletionErrorApology(t *testing.T) {
	api := &fakeAPI{}
	ai := &fakeCompleter{err: &deepseek.StatusError{StatusCode: 500, Body: "boom"}}
	b := newTestBot(api, ai)
	b.extractPDF = func(string) (string, error) {
		return "texto", nil
	}

	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "guia.pdf")})

	texts := api.sentTexts()
	require.Len(t, texts, 1)
	require.Equal(t, apologyTransport, texts[0])
}

func TestDocument_FileNameNeverTouchesLocalPath(t *testing.T) {
	api := &fakeAPI{}
	ai := &fakeCompleter{text: "resumen"}
	b := newTestBot(api, ai)

	var gotURL string
	b.extractPDF = func(fileURL string) (string, error) {
		gotURL = fileURL
		return "texto", nil
	}

	// a hostile name still dispatches as a PDF; only the Telegram file URL
	// reaches the extractor
	b.handleUpdate(tgbotapi.Update{Message: documentMessage(1, "../../etc/passwd.pdf")})

	require.Len(t, ai.calls, 1)
	require.NotContains(t, gotURL, "passwd")

	texts := api.sentTexts()
	require.Len(t, texts, 1)
	require.Equal(t, "resumen", texts[0])
}
