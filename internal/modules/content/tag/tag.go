package tag

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
	"gorm.io/gorm"
)

// UpsertTagDTO finds or creates a tag by name.
type UpsertTagDTO struct {
	Name string `json:"name" binding:"required"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/tags/upsert", authMW, h.upsert)
}

// upsert POST /tags/upsert  [auth] — find-or-create by name, returns the tag
// with its id either way.
func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var tag models.TagModel
	err := h.db.Where("name = ?", dto.Name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = models.TagModel{Name: dto.Name}
		err = h.db.Create(&tag).Error
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, tag)
}
