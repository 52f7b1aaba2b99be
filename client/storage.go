package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// FileObject is one stored media file.
type FileObject struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// StorageUsage summarizes the uploads directory.
type StorageUsage struct {
	TotalBytes int64 `json:"total_bytes"`
	FileCount  int   `json:"file_count"`
}

// StorageAPI wraps the media storage endpoints. All of them require a
// signed-in session.
type StorageAPI struct {
	c *Client
}

// List returns stored files. The uploads directory is flat; a prefix naming
// a pseudo-folder like "public" matches nothing and returns an empty list
// without a request.
func (s *StorageAPI) List(ctx context.Context, prefix string) ([]FileObject, error) {
	if prefix == "public" || strings.HasPrefix(prefix, "public/") {
		return []FileObject{}, nil
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/api/storage/list", nil, nil)
	if err != nil {
		return nil, err
	}
	data, err := dataField(raw)
	if err != nil {
		return nil, err
	}
	var files []FileObject
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, err
	}
	if prefix == "" {
		return files, nil
	}
	matched := files[:0]
	for _, f := range files {
		if strings.HasPrefix(f.Name, prefix) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// PublicURL resolves a stored path to its served URL. Legacy "public/"
// prefixes and bare file names are normalized onto the /uploads mount.
func (s *StorageAPI) PublicURL(path string) string {
	p := strings.TrimPrefix(path, "/")
	p = strings.TrimPrefix(p, "public/")
	if !strings.HasPrefix(p, "uploads/") {
		p = "uploads/" + p
	}
	return s.c.baseURL + "/" + p
}

// Upload stores the content of r under a server-generated name derived from
// filename, and returns the stored path.
func (s *StorageAPI) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	raw, err := s.c.doMultipart(ctx, "/api/storage/upload", w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	var out struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// Remove deletes stored files by path. Paths that are already gone succeed.
func (s *StorageAPI) Remove(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		params := url.Values{"path": []string{path}}
		if _, err := s.c.do(ctx, http.MethodDelete, "/api/storage/remove", params, nil); err != nil {
			return err
		}
	}
	return nil
}

// Usage reports the total size and count of stored files.
func (s *StorageAPI) Usage(ctx context.Context) (StorageUsage, error) {
	raw, err := s.c.do(ctx, http.MethodGet, "/api/storage/usage", nil, nil)
	if err != nil {
		return StorageUsage{}, err
	}
	data, err := dataField(raw)
	if err != nil {
		return StorageUsage{}, err
	}
	var usage StorageUsage
	if err := json.Unmarshal(data, &usage); err != nil {
		return StorageUsage{}, err
	}
	return usage, nil
}
