package usecase

import (
	"context"
	"io"
)

// Upload is a file submitted with a form.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// ImageStore persists uploaded images outside the database.
type ImageStore interface {
	// Store saves the upload and returns its relative path (uploads/<name>).
	// It rejects empty names and non-image extensions.
	Store(ctx context.Context, file Upload) (string, error)
	Delete(ctx context.Context, path string) error
}

// FederatedProfile is the verified identity tuple returned by a provider.
type FederatedProfile struct {
	ExternalID  string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Notice is a user-facing message attached to a response.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeWarning = "warning"
)
