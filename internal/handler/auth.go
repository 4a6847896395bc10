package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/artfusion/gallery-api/internal/config"
	"github.com/artfusion/gallery-api/internal/utils"
)

// AuthHandler implements the session gate for the single administrative
// identity.  There are no user rows anywhere: the credentials live in
// configuration, and a successful login yields a signed, time-limited
// bearer token carrying the username as its only claim.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the static admin credentials and issues a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password required"})
	}
	if req.Username != h.Cfg.AdminUser ||
		!utils.VerifyAdminPassword(h.Cfg.AdminPassHash, h.Cfg.AdminPass, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	tok, err := utils.NewAdminToken(h.Cfg.JWTSecret, req.Username, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":    tok.Token,
		"username": req.Username,
	})
}

// Verify reports whether the presented bearer token is valid.  The
// AdminAuth middleware has already rejected anything invalid, so reaching
// the handler means success.
func (h *AuthHandler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"valid":    true,
		"username": c.Get("username"),
	})
}
