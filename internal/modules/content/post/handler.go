package post

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
	"gorm.io/gorm"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts post routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts")

	posts.GET("", h.list)
	posts.GET("/:id", h.get)
	posts.POST("/:id/increment_view", h.incrementView)

	posts.POST("", authMW, h.upsert)
	posts.DELETE("/:id", authMW, h.delete)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	posts, err := h.svc.List(lq)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]postResponse, len(posts))
	for i, p := range posts {
		items[i] = toResponse(&p)
	}
	response.Data(c, items)
}

// get GET /posts/:id — numeric id first, slug fallback.
func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.GetByIdentifier(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.Data(c, toResponse(post))
}

// upsert POST /posts  [auth]
func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertPostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Upsert(&dto)
	if err != nil {
		if errors.Is(err, errSlugTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.Data(c, toResponse(post))
}

// delete DELETE /posts/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.svc.Delete(uint(id)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}

// incrementView POST /posts/:id/increment_view
func (h *Handler) incrementView(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.svc.IncrementView(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}
