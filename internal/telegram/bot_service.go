// Package telegram handles the integration with the Telegram Bot API.
// It receives updates from Telegram, routes each one to the matching
// handler, and sends the replies back.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gembot/backend/internal/models"
	"gembot/backend/internal/search"
	"gembot/backend/internal/sentiment"
	"gembot/backend/internal/storage"
)

// Sender is the slice of the bot API used to deliver replies.
// *tgbotapi.BotAPI satisfies it; tests substitute a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TextGenerator produces the AI completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FileAnalyzer turns a downloaded file into an analysis string.
type FileAnalyzer interface {
	Analyze(ctx context.Context, path, mimeType string, isPhoto bool) (string, error)
}

// WebSearcher runs a web query and returns title/link pairs.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// BotService receives Telegram updates and routes them to the handlers.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	Sender      Sender
	Storage     storage.Storage
	AI          TextGenerator
	Analyzer    FileAnalyzer
	Searcher    WebSearcher
	DownloadDir string

	// fileURL resolves a Telegram file ID to a download URL; overridden in tests.
	fileURL func(fileID string) (string, error)
}

// NewBotService creates a new BotService instance.
func NewBotService(token string, s storage.Storage, ai TextGenerator, analyzer FileAnalyzer, searcher WebSearcher, downloadDir string) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		Sender:      bot,
		Storage:     s,
		AI:          ai,
		Analyzer:    analyzer,
		Searcher:    searcher,
		DownloadDir: downloadDir,
		fileURL:     bot.GetFileDirectURL,
	}, nil
}

// Run is the main loop for receiving Telegram updates. Each update is
// handled in its own goroutine; ordering between updates is whatever the
// platform delivers.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		go s.handleMessage(context.Background(), update.Message)
	}
}

// handleMessage routes one incoming message to its handler. The categories
// are disjoint: commands first, then contact shares, then attachments, then
// free text.
func (s *BotService) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		switch msg.Command() {
		case "start":
			s.handleStart(ctx, msg)
		case "websearch":
			s.handleWebSearch(ctx, msg)
		}
	case msg.Contact != nil:
		s.handleContact(ctx, msg)
	case msg.Photo != nil || msg.Document != nil:
		s.handleFile(ctx, msg)
	case msg.Text != "":
		s.handleText(ctx, msg)
	}
}

// handleStart registers an unseen chat and asks for the phone number, or
// greets a chat that already has a user document. Calling /start twice
// never creates a second document.
func (s *BotService) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	user, err := s.Storage.UserByChatID(ctx, chatID)
	if err != nil {
		log.Printf("ERROR: failed to look up user for chat %d: %v", chatID, err)
		return
	}

	if user != nil {
		s.reply(chatID, fmt.Sprintf(replyAlreadyRegistered, msg.Chat.FirstName))
		return
	}

	newUser := &models.User{
		ChatID:            chatID,
		FirstName:         msg.Chat.FirstName,
		Username:          msg.Chat.UserName,
		PhoneNumber:       nil,
		RegistrationState: models.RegistrationPendingPhone,
		CreatedAt:         time.Now(),
	}
	if err := s.Storage.CreateUser(ctx, newUser); err != nil {
		log.Printf("ERROR: failed to create user for chat %d: %v", chatID, err)
		return
	}

	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(buttonSharePhone),
		),
	)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true

	reply := tgbotapi.NewMessage(chatID, replyAskPhone)
	reply.ReplyMarkup = keyboard
	s.send(reply)
}

// handleContact completes registration when the shared contact belongs to
// the sender. A contact for anyone else is rejected without touching the
// stored record.
func (s *BotService) handleContact(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	contact := msg.Contact

	if contact == nil || msg.From == nil || contact.UserID != msg.From.ID {
		s.reply(chatID, replyOwnNumberOnly)
		return
	}

	if err := s.Storage.SetPhoneNumber(ctx, chatID, contact.PhoneNumber); err != nil {
		log.Printf("ERROR: failed to save phone number for chat %d: %v", chatID, err)
		return
	}
	s.reply(chatID, replyRegistered)
}

// handleText routes free text: a chat that just issued /websearch has its
// next message consumed as the search query; everything else is AI chat.
func (s *BotService) handleText(ctx context.Context, msg *tgbotapi.Message) {
	action, err := s.Storage.TakePendingAction(ctx, msg.Chat.ID)
	if err != nil {
		log.Printf("ERROR: failed to read pending action for chat %d: %v", msg.Chat.ID, err)
		action = models.PendingNone
	}

	if action == models.PendingSearchQuery {
		s.handleSearchQuery(ctx, msg)
		return
	}
	s.handleChat(ctx, msg)
}

// handleChat is the AI-chat path: tag sentiment, call the AI, prefix the
// sentiment preamble, persist the turn, reply.
func (s *BotService) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userInput := msg.Text

	label := sentiment.Classify(userInput)

	s.reply(chatID, replyThinking)
	s.reply(chatID, fmt.Sprintf(replyAnalyzingSentiment, capitalize(string(label))))

	response, err := s.AI.Generate(ctx, userInput)
	if err != nil {
		log.Printf("ERROR: AI completion failed for chat %d: %v", chatID, err)
		s.reply(chatID, replyAIUnavailable)
		return
	}

	switch label {
	case sentiment.Negative:
		response = preambleNegative + response
	case sentiment.Positive:
		response = preamblePositive + response
	}

	turn := &models.ChatTurn{
		ChatID:      chatID,
		UserInput:   userInput,
		BotResponse: response,
		Sentiment:   label,
		CreatedAt:   time.Now(),
	}
	if err := s.Storage.SaveChatTurn(ctx, turn); err != nil {
		log.Printf("ERROR: failed to save chat turn for chat %d: %v", chatID, err)
		s.reply(chatID, replyAIUnavailable)
		return
	}

	s.reply(chatID, response)
}

// handleWebSearch arms the pending-action slot and prompts for a query.
func (s *BotService) handleWebSearch(ctx context.Context, msg *tgbotapi.Message) {
	if err := s.Storage.SetPendingAction(ctx, msg.Chat.ID, models.PendingSearchQuery); err != nil {
		log.Printf("ERROR: failed to set pending action for chat %d: %v", msg.Chat.ID, err)
	}
	s.reply(msg.Chat.ID, replySearchPrompt)
}

// handleSearchQuery runs the armed search: query the web, summarize the
// hits with the AI responder, reply with the summary. No results and
// transport failures both end in the no-results reply; nothing is persisted
// on this path.
func (s *BotService) handleSearchQuery(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	s.reply(chatID, replySearching)

	results, err := s.Searcher.Search(ctx, msg.Text)
	if err != nil {
		log.Printf("ERROR: web search failed for chat %d: %v", chatID, err)
		s.reply(chatID, replyNoResults)
		return
	}
	if len(results) == 0 {
		s.reply(chatID, replyNoResults)
		return
	}

	listing := search.FormatResults(results)
	summary, err := s.AI.Generate(ctx, "Summarize these search results: "+listing)
	if err != nil {
		log.Printf("ERROR: search summarization failed for chat %d: %v", chatID, err)
		s.reply(chatID, replyAIUnavailable)
		return
	}

	s.reply(chatID, fmt.Sprintf(replySearchSummary, summary))
}

func (s *BotService) reply(chatID int64, text string) {
	s.send(tgbotapi.NewMessage(chatID, text))
}

func (s *BotService) send(c tgbotapi.Chattable) {
	if _, err := s.Sender.Send(c); err != nil {
		log.Printf("ERROR: failed to send Telegram message: %v", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
