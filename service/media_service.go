package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"daybook/config"
)

var (
	ErrFileTooLarge   = errors.New("file exceeds the maximum upload size")
	ErrFileType       = errors.New("file type is not allowed")
	ErrBadImageURL    = errors.New("image url is invalid")
	ErrImageExtension = errors.New("image url extension is not allowed")
)

var imageURLExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "svg": true,
}

// MediaService validates and stores uploaded attachments under a per-user
// directory, and validates external image URLs.
type MediaService struct {
	dir         string
	maxBytes    int64
	allowedMime map[string]bool
}

func NewMediaService(cfg config.UploadsConfig) *MediaService {
	allowed := make(map[string]bool, len(cfg.AllowedMime))
	for _, m := range cfg.AllowedMime {
		allowed[m] = true
	}
	return &MediaService{
		dir:         cfg.Dir,
		maxBytes:    cfg.MaxSizeBytes,
		allowedMime: allowed,
	}
}

// StoreUpload validates one uploaded file (size, sniffed content type) and
// writes it to uploads/<userID>/ under a uuid-based name. It returns the
// relative path recorded in media rows plus the detected MIME type.
func (m *MediaService) StoreUpload(userID uint64, fh *multipart.FileHeader) (relPath, mimeType string, err error) {
	if fh == nil || fh.Filename == "" {
		return "", "", errors.New("no file")
	}
	if fh.Size > m.maxBytes {
		return "", "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Sniff the real content type; the client-sent header is not trusted.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	mimeType = strippedContentType(http.DetectContentType(head[:n]))
	if !m.allowedMime[mimeType] {
		return "", "", ErrFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewind upload: %w", err)
	}

	userDir := filepath.Join(m.dir, fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", "", fmt.Errorf("upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := "m_" + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(userDir, name))
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return fmt.Sprintf("uploads/%d/%s", userID, name), mimeType, nil
}

// ValidateImageURL checks that raw parses as an http(s) URL whose path
// carries an allowed image extension, and returns the MIME type to store.
// "jpg" normalizes to "jpeg".
func ValidateImageURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrBadImageURL
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if !imageURLExtensions[ext] {
		return "", ErrImageExtension
	}
	if ext == "jpg" {
		ext = "jpeg"
	}
	return "image/" + ext, nil
}

// strippedContentType drops any parameters DetectContentType may append,
// e.g. "text/plain; charset=utf-8".
func strippedContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}
