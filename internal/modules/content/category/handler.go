package category

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	cats := rg.Group("/categories")
	cats.GET("", h.list)
	cats.POST("", authMW, h.upsert)
	cats.DELETE("/:id", authMW, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, cats)
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Upsert(&dto); err != nil {
		if errors.Is(err, errNameTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.svc.Delete(uint(id)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}
