package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"

	"daybook/config"
)

func TestValidateImageURL(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{"https://example.com/photo.png", "image/png", nil},
		{"https://example.com/photo.jpg", "image/jpeg", nil},
		{"http://example.com/a/b/photo.JPEG", "image/jpeg", nil},
		{"https://example.com/anim.webp?size=large", "image/webp", nil},
		{"ftp://example.com/photo.png", "", ErrBadImageURL},
		{"not a url at all", "", ErrBadImageURL},
		{"https:///photo.png", "", ErrBadImageURL},
		{"https://example.com/doc.pdf", "", ErrImageExtension},
		{"https://example.com/noext", "", ErrImageExtension},
	}
	for _, c := range cases {
		got, err := ValidateImageURL(c.raw)
		if c.wantErr != nil {
			if !errors.Is(err, c.wantErr) {
				t.Errorf("ValidateImageURL(%q) err = %v, want %v", c.raw, err, c.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateImageURL(%q) unexpected error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("ValidateImageURL(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

// uploadHeader builds a real multipart.FileHeader around content.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("media", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["media"][0]
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestStoreUploadAcceptsSniffedPNG(t *testing.T) {
	dir := t.TempDir()
	m := NewMediaService(config.UploadsConfig{
		Dir:          dir,
		MaxSizeBytes: 1024,
		AllowedMime:  []string{"image/png"},
	})

	relPath, mime, err := m.StoreUpload(7, uploadHeader(t, "pic.png", pngHeader))
	if err != nil {
		t.Fatalf("StoreUpload failed: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("expected image/png, got %q", mime)
	}
	if !strings.HasPrefix(relPath, "uploads/7/m_") {
		t.Fatalf("unexpected relative path %q", relPath)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "7", "m_*.png"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one stored file, got %v (err %v)", matches, err)
	}
}

func TestStoreUploadRejectsDisallowedType(t *testing.T) {
	m := NewMediaService(config.UploadsConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: 1024,
		AllowedMime:  []string{"image/png"},
	})
	// Plain text sniffs as text/plain regardless of the .png name.
	_, _, err := m.StoreUpload(7, uploadHeader(t, "fake.png", []byte("just some text")))
	if !errors.Is(err, ErrFileType) {
		t.Fatalf("expected ErrFileType, got %v", err)
	}
}

func TestStoreUploadRejectsOversizedFile(t *testing.T) {
	m := NewMediaService(config.UploadsConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: 4,
		AllowedMime:  []string{"image/png"},
	})
	_, _, err := m.StoreUpload(7, uploadHeader(t, "big.png", pngHeader))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}
