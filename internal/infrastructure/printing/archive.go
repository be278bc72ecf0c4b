package printing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HTMLArchive defines the interface for persisting rendered receipt HTML so
// past renders can be re-served without re-rendering.
type HTMLArchive interface {
	// Store saves a rendered receipt and returns its URL/path
	Store(ctx context.Context, req *ArchiveRequest) (*ArchiveResult, error)
	// Get retrieves a rendered receipt by its path
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a rendered receipt
	Delete(ctx context.Context, path string) error
	// CleanupOlderThan removes renders older than the specified duration
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
	// GetURL returns the accessible URL for an archived render
	GetURL(path string) string
}

// ArchiveRequest contains the parameters for archiving a render
type ArchiveRequest struct {
	// TenantID for multi-tenant isolation
	TenantID uuid.UUID
	// RenderID identifies this render
	RenderID uuid.UUID
	// HTML is the rendered page content
	HTML string
}

// ArchiveResult contains the result of archiving a render
type ArchiveResult struct {
	// Path is the storage path (relative to base)
	Path string
	// URL is the accessible URL for the render
	URL string
	// Size is the file size in bytes
	Size int64
}

// FileSystemArchiveConfig contains configuration for file system archival
type FileSystemArchiveConfig struct {
	// BasePath is the root directory for archived renders
	// Default: /data/receipts
	BasePath string
	// BaseURL is the URL prefix for accessing renders
	// Example: https://ledger.example.com/api/v1/receipts/rendered
	BaseURL string
	// RetentionDays is how long to keep renders (0 = forever)
	RetentionDays int
	// Logger for operations
	Logger *zap.Logger
}

// FileSystemArchive stores rendered receipts on the local file system
type FileSystemArchive struct {
	config *FileSystemArchiveConfig
	logger *zap.Logger
}

// NewFileSystemArchive creates a new file system based render archive
func NewFileSystemArchive(config *FileSystemArchiveConfig) (*FileSystemArchive, error) {
	if config == nil {
		config = &FileSystemArchiveConfig{}
	}

	if config.BasePath == "" {
		config.BasePath = "/data/receipts"
	}
	if config.BaseURL == "" {
		config.BaseURL = "/api/v1/receipts/rendered"
	}

	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, NewRenderError(ErrCodeArchiveFailed,
			fmt.Sprintf("failed to create archive directory: %s", config.BasePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemArchive{
		config: config,
		logger: logger,
	}, nil
}

// Store saves a rendered receipt to the file system
// Path structure: {base}/{tenant_id}/{year}/{month}/{render_id}.html
func (s *FileSystemArchive) Store(ctx context.Context, req *ArchiveRequest) (*ArchiveResult, error) {
	select {
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeArchiveFailed, "operation cancelled", ctx.Err())
	default:
	}

	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidRequest, "archive request is nil", nil)
	}
	if req.TenantID == uuid.Nil {
		return nil, NewRenderError(ErrCodeInvalidRequest, "tenant ID is required", nil)
	}
	if req.RenderID == uuid.Nil {
		return nil, NewRenderError(ErrCodeInvalidRequest, "render ID is required", nil)
	}
	if req.HTML == "" {
		return nil, NewRenderError(ErrCodeInvalidRequest, "rendered content is empty", nil)
	}

	now := time.Now()
	dirPath := filepath.Join(
		s.config.BasePath,
		req.TenantID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
	)

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, NewRenderError(ErrCodeArchiveFailed, "failed to create directory", err)
	}

	fileName := req.RenderID.String() + ".html"
	filePath := filepath.Join(dirPath, fileName)

	if err := os.WriteFile(filePath, []byte(req.HTML), 0644); err != nil {
		return nil, NewRenderError(ErrCodeArchiveFailed, "failed to write render file", err)
	}

	relativePath := filepath.Join(
		req.TenantID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		fileName,
	)

	url := s.GetURL(relativePath)

	s.logger.Info("render archived",
		zap.String("path", filePath),
		zap.Int("size", len(req.HTML)),
		zap.String("url", url))

	return &ArchiveResult{
		Path: relativePath,
		URL:  url,
		Size: int64(len(req.HTML)),
	}, nil
}

// Get retrieves an archived render by its relative path
func (s *FileSystemArchive) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeArchiveFailed, "operation cancelled", ctx.Err())
	default:
	}

	fullPath, err := s.resolveSafe(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewRenderError(ErrCodeArchiveFailed, "render not found", err)
		}
		return nil, NewRenderError(ErrCodeArchiveFailed, "failed to open render file", err)
	}

	return file, nil
}

// Delete removes an archived render
func (s *FileSystemArchive) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return NewRenderError(ErrCodeArchiveFailed, "operation cancelled", ctx.Err())
	default:
	}

	fullPath, err := s.resolveSafe(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // already gone
		}
		return NewRenderError(ErrCodeArchiveFailed, "failed to delete render file", err)
	}

	s.logger.Info("render deleted", zap.String("path", path))
	return nil
}

// CleanupOlderThan removes archived renders older than the specified duration
func (s *FileSystemArchive) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deletedCount := 0

	err := filepath.Walk(s.config.BasePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deletedCount++
				s.logger.Debug("deleted old render", zap.String("path", path))
			}
		}

		return nil
	})

	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		return deletedCount, NewRenderError(ErrCodeArchiveFailed, "cleanup walk failed", err)
	}

	s.logger.Info("cleanup completed",
		zap.Int("deleted", deletedCount),
		zap.Duration("age", age))

	return deletedCount, nil
}

// GetURL returns the accessible URL for an archived render
func (s *FileSystemArchive) GetURL(path string) string {
	cleanPath := filepath.ToSlash(filepath.Clean(path))
	return fmt.Sprintf("%s/%s", s.config.BaseURL, cleanPath)
}

// resolveSafe sanitizes a relative archive path and resolves it under the
// base directory, rejecting traversal attempts.
func (s *FileSystemArchive) resolveSafe(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) || containsDotDot(path) {
		s.logger.Warn("blocked potentially malicious path",
			zap.String("path", path),
			zap.String("cleanPath", cleanPath))
		return "", NewRenderError(ErrCodeArchiveFailed, "invalid path", nil)
	}

	fullPath := filepath.Join(s.config.BasePath, cleanPath)

	absBase, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", NewRenderError(ErrCodeArchiveFailed, "failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", NewRenderError(ErrCodeArchiveFailed, "failed to resolve file path", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		s.logger.Warn("path escape attempt blocked",
			zap.String("path", path),
			zap.String("absPath", absPath),
			zap.String("absBase", absBase))
		return "", NewRenderError(ErrCodeArchiveFailed, "invalid path", nil)
	}

	return fullPath, nil
}

// containsDotDot checks if a path contains ".." components before any
// normalization can hide them.
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}

// Ensure FileSystemArchive implements HTMLArchive
var _ HTMLArchive = (*FileSystemArchive)(nil)
