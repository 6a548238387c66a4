package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gembot/backend/internal/models"
)

// handleFile downloads a photo or document attachment, runs the content
// extractor over it, persists the analysis record, and replies. The
// downloaded file is removed on every exit path, success or failure.
func (s *BotService) handleFile(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	var (
		fileID   string
		fileName string
		mimeType string
		isPhoto  bool
	)
	switch {
	case msg.Document != nil:
		fileID = msg.Document.FileID
		fileName = msg.Document.FileName
		mimeType = msg.Document.MimeType
	case len(msg.Photo) > 0:
		// Telegram sends several sizes; take the largest.
		largest := msg.Photo[len(msg.Photo)-1]
		fileID = largest.FileID
		isPhoto = true
	default:
		s.reply(chatID, replyNoFile)
		return
	}
	if fileName == "" {
		fileName = "image.jpg"
	}

	path, err := s.downloadFile(fileID, fileName)
	if err != nil {
		log.Printf("ERROR: failed to download file %s for chat %d: %v", fileID, chatID, err)
		s.reply(chatID, replyFileError)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("WARN: failed to remove downloaded file %s: %v", path, err)
		}
	}()

	s.reply(chatID, replyAnalyzingFile)

	analysis, err := s.Analyzer.Analyze(ctx, path, mimeType, isPhoto)
	if err != nil {
		log.Printf("ERROR: file analysis failed for chat %d: %v", chatID, err)
		s.reply(chatID, replyFileError)
		return
	}

	record := &models.FileAnalysis{
		ChatID:    chatID,
		FileName:  fileName,
		Analysis:  analysis,
		CreatedAt: time.Now(),
	}
	if err := s.Storage.SaveFileAnalysis(ctx, record); err != nil {
		log.Printf("ERROR: failed to save file analysis for chat %d: %v", chatID, err)
		s.reply(chatID, replyFileError)
		return
	}

	s.reply(chatID, fmt.Sprintf(replyFileResult, fileName, analysis))
}

// downloadFile fetches a Telegram file into the working directory and
// returns its local path.
func (s *BotService) downloadFile(fileID, fileName string) (string, error) {
	fileURL, err := s.fileURL(fileID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.DownloadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.DownloadDir, fileName)

	resp, err := http.Get(fileURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", fileID, resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
