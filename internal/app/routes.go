package app

import (
	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/middleware"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/auth/auth"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/content/category"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/content/comment"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/content/post"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/content/relation"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/content/tag"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/storage/file"
	"github.com/nooblk-98/DevOps-Blog/internal/modules/system/settings"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	secret := []byte(a.cfg.JWTSecret)
	authMW := middleware.Auth(secret)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})

	api := r.Group("/api")

	auth.NewHandler(auth.NewService(db), secret, !a.cfg.IsDev()).RegisterRoutes(api)

	post.NewHandler(post.NewService(db)).RegisterRoutes(api, authMW)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	tag.NewHandler(db).RegisterRoutes(api, authMW)
	relation.NewHandler(relation.NewService(db)).RegisterRoutes(api, authMW)
	comment.NewHandler(comment.NewService(db)).RegisterRoutes(api, authMW)
	settings.NewHandler(db).RegisterRoutes(api, authMW)
	file.NewHandler(a.cfg.UploadsDir).RegisterRoutes(api, authMW)
}
