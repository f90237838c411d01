package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// saveUpload stores an optional multipart file upload under the media
// root and returns its path relative to that root. A missing file is
// not an error, and neither is a plain urlencoded form without any
// multipart body; the empty path means "no upload".
func saveUpload(c *gin.Context, uploadsPath, field, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read upload %q: %w", field, err)
	}

	dir := filepath.Join(uploadsPath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Random filenames avoid collisions and strip whatever the browser sent
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	name := hex.EncodeToString(buf) + filepath.Ext(file.Filename)

	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}
