package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"prevently/internal/docstore"
	"prevently/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	MaxProfileImageBytes = 5 << 20
	// room for multipart boundaries and headers around the file part
	multipartOverhead = 64 << 10
)

type ImageStore interface {
	SaveImage(ctx context.Context, img model.Image) (int, error)
	GetImage(ctx context.Context, id string) (*model.Image, error)
}

type ProfileLinker interface {
	SetProfilePicture(ctx context.Context, username, imageID string) error
}

type ImageHandler struct {
	images ImageStore
	users  ProfileLinker
}

func NewImageHandler(images ImageStore, users ProfileLinker) *ImageHandler {
	return &ImageHandler{images: images, users: users}
}

func (h *ImageHandler) UploadProfileImage(c *gin.Context) {
	username := c.Param("username")
	if !usernamePattern.MatchString(username) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid username"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxProfileImageBytes+multipartOverhead)

	header, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Image too large"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}
	if header.Size > MaxProfileImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Image too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		slog.Error("error opening upload", "error", err, "username", username)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unreadable file"})
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(io.LimitReader(file, MaxProfileImageBytes+1))
	if err != nil {
		slog.Error("error reading upload", "error", err, "username", username)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unreadable file"})
		return
	}
	if len(contents) > MaxProfileImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Image too large"})
		return
	}

	ctx := c.Request.Context()
	imageID := username + "_profile"

	chunks, err := h.images.SaveImage(ctx, model.Image{
		ID:          imageID,
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        contents,
	})
	if err != nil {
		slog.Error("error saving image", "error", err, "image_id", imageID)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save image"})
		return
	}

	if err := h.users.SetProfilePicture(ctx, username, imageID); err != nil {
		slog.Error("error linking profile picture", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to link image"})
		return
	}

	slog.Info("profile image uploaded", "image_id", imageID, "chunks", chunks, "bytes", len(contents))

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Uploaded and linked %s to %s", header.Filename, username),
		"image_id": imageID,
	})
}

func (h *ImageHandler) GetImage(c *gin.Context) {
	imageID := c.Param("image_id")

	img, err := h.images.GetImage(c.Request.Context(), imageID)
	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Image not found"})
		return
	}
	if err != nil {
		slog.Error("error fetching image", "error", err, "image_id", imageID)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch image"})
		return
	}

	c.JSON(http.StatusOK, ImageResponse{
		Name:        img.Name,
		ContentType: img.ContentType,
		Data:        base64.StdEncoding.EncodeToString(img.Data),
	})
}
