package file

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

// Handler manages the uploads directory: list, upload, remove, usage.
// Files are served statically at /uploads by the app.
type Handler struct {
	uploadsDir string
}

func NewHandler(uploadsDir string) *Handler {
	return &Handler{uploadsDir: uploadsDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	storage := rg.Group("/storage", authMW)
	storage.GET("/list", h.list)
	storage.POST("/upload", h.upload)
	storage.DELETE("/remove", h.remove)
	storage.GET("/usage", h.usage)
}

// list GET /storage/list  [auth]
func (h *Handler) list(c *gin.Context) {
	entries, err := os.ReadDir(h.uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			response.Data(c, []gin.H{})
			return
		}
		response.InternalError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		items = append(items, gin.H{
			"name": ent.Name(),
			"path": "uploads/" + ent.Name(),
		})
	}
	response.Data(c, items)
}

// upload POST /storage/upload  [auth] — multipart field "file"; the stored
// name is derived from the upload time.
func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file")
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		response.InternalError(c, err)
		return
	}

	filename := buildFileName(fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.uploadsDir, filename)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"path": "uploads/" + filename})
}

type removeDTO struct {
	Path string `json:"path"`
}

// remove DELETE /storage/remove  [auth] — path in the JSON body or the
// "path" query param. Removing a file that is already gone succeeds.
func (h *Handler) remove(c *gin.Context) {
	var dto removeDTO
	_ = c.ShouldBindJSON(&dto)
	if dto.Path == "" {
		dto.Path = c.Query("path")
	}

	name, err := normalizeUploadPath(dto.Path)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := os.Remove(filepath.Join(h.uploadsDir, name)); err != nil && !os.IsNotExist(err) {
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}

// usage GET /storage/usage  [auth]
func (h *Handler) usage(c *gin.Context) {
	entries, err := os.ReadDir(h.uploadsDir)
	if err != nil && !os.IsNotExist(err) {
		response.InternalError(c, err)
		return
	}

	var totalBytes int64
	var fileCount int
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		totalBytes += info.Size()
		fileCount++
	}
	response.Data(c, gin.H{"total_bytes": totalBytes, "file_count": fileCount})
}
