package handler

import (
	"context"
	"log/slog"
	"net/http"

	"prevently/internal/model"

	"github.com/gin-gonic/gin"
)

type DomainStore interface {
	GetAllDomains(ctx context.Context) ([]model.Domain, error)
	Ping(ctx context.Context) error
}

type DomainHandler struct {
	repository DomainStore
}

func NewDomainHandler(repository DomainStore) *DomainHandler {
	return &DomainHandler{repository: repository}
}

func (h *DomainHandler) GetDomains(c *gin.Context) {
	domains, err := h.repository.GetAllDomains(c.Request.Context())
	if err != nil {
		slog.Error("error fetching domains", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch domains"})
		return
	}

	res := DomainsResponse{Domains: make([]DomainResponse, 0, len(domains))}
	for _, d := range domains {
		res.Domains = append(res.Domains, DomainResponse{ID: d.ID, Name: d.Name})
	}

	c.JSON(http.StatusOK, res)
}

func (h *DomainHandler) GetHealth(c *gin.Context) {
	if err := h.repository.Ping(c.Request.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  "connected",
	})
}
