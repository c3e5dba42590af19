package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"prevently/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatResponder interface {
	Reply(ctx context.Context, req service.ChatRequest) (string, error)
}

type ChatHandler struct {
	chat ChatResponder
}

func NewChatHandler(chat ChatResponder) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid chat request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), req.toService())
	if errors.Is(err, service.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Message is required"})
		return
	}
	if err != nil {
		slog.Error("error generating chat reply", "error", err, "model", req.Model)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "AI service error"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}
