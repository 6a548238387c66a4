// Package handler exposes the read-only operator API over the stored
// users, chat history, and file-analysis collections. It adds no write
// path; the bot remains the only writer.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gembot/backend/internal/storage"
)

type Handler struct {
	Storage storage.Storage
	secret  []byte
}

// NewHandler creates a new Handler instance. secret both authenticates
// token requests and signs the issued tokens.
func NewHandler(s storage.Storage, secret string) *Handler {
	return &Handler{
		Storage: s,
		secret:  []byte(secret),
	}
}

// Register mounts the operator routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/auth/token", h.IssueToken)

	api := r.Group("/api", h.RequireAuth())
	api.GET("/users/:chat_id", h.GetUser)
	api.GET("/history/:chat_id", h.GetHistory)
	api.GET("/files/:chat_id", h.GetFileAnalyses)
}

func chatIDParam(c *gin.Context) (int64, bool) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat_id"})
		return 0, false
	}
	return chatID, true
}

func (h *Handler) GetUser(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	user, err := h.Storage.UserByChatID(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetHistory(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	turns, err := h.Storage.ChatTurnsByChatID(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat_id": chatID, "turns": turns})
}

func (h *Handler) GetFileAnalyses(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	records, err := h.Storage.FileAnalysesByChatID(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat_id": chatID, "files": records})
}
