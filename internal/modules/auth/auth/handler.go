package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/middleware"
	jwtpkg "github.com/nooblk-98/DevOps-Blog/internal/pkg/jwt"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

// SignInDTO is the credentials body for POST /auth/signin.
type SignInDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionPayload struct {
	AccessToken string      `json:"access_token"`
	User        sessionUser `json:"user"`
}

type Handler struct {
	svc    *Service
	secret []byte
	secure bool
}

// NewHandler wires the auth routes. secure controls the cookie's Secure flag
// and should be on behind TLS.
func NewHandler(svc *Service, secret []byte, secure bool) *Handler {
	return &Handler{svc: svc, secret: secret, secure: secure}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/auth")
	grp.POST("/signin", h.signIn)
	grp.GET("/session", h.session)
	grp.POST("/signout", h.signOut)
}

// signIn POST /auth/signin — wrong credentials are a 400 and no cookie is set.
func (h *Handler) signIn(c *gin.Context) {
	var dto SignInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	userID := strconv.FormatUint(uint64(user.ID), 10)
	token, err := jwtpkg.Sign(h.secret, userID, user.Email, jwtpkg.TokenTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	h.setCookie(c, token, int(jwtpkg.TokenTTL.Seconds()))
	response.OK(c, gin.H{"session": sessionPayload{
		AccessToken: token,
		User:        sessionUser{ID: userID, Email: user.Email},
	}})
}

// session GET /auth/session — resolves to {"session": null} rather than an
// error when the token is absent, invalid or expired.
func (h *Handler) session(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		response.OK(c, gin.H{"session": nil})
		return
	}
	claims, err := jwtpkg.Parse(h.secret, token)
	if err != nil {
		response.OK(c, gin.H{"session": nil})
		return
	}
	response.OK(c, gin.H{"session": sessionPayload{
		AccessToken: token,
		User:        sessionUser{ID: claims.UserID(), Email: claims.Email},
	}})
}

// signOut POST /auth/signout — clears the cookie; tokens elsewhere stay valid
// until expiry (no revocation list).
func (h *Handler) signOut(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.Success(c)
}

func (h *Handler) setCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, token, maxAge, "/", "", h.secure, true)
}
