package file

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var errBadPath = errors.New("invalid upload path")

// buildFileName derives a stored name from the upload time plus a short
// random suffix, keeping the original extension.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// normalizeUploadPath reduces a client-supplied path ("uploads/x.png",
// "public/uploads/x.png", "/x.png") to a bare file name inside the uploads
// directory. Absolute paths and traversal are rejected outright.
func normalizeUploadPath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.Contains(p, "..") || filepath.IsAbs(p) {
		return "", errBadPath
	}
	p = strings.TrimPrefix(p, "public/")
	p = strings.TrimPrefix(p, "uploads/")
	if p == "" || strings.ContainsAny(p, `/\`) {
		return "", errBadPath
	}
	return p, nil
}
