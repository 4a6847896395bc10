package middleware // middleware contains reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/artfusion/gallery-api/internal/utils"
)

// AdminAuth returns an Echo middleware that validates the admin bearer
// token and injects the username claim into the request context under
// "username".  Every mutating catalog route is wrapped by it; a request
// with no bearer at all is distinguished from one with a malformed or
// expired token so the client can tell "log in" apart from "log in again".
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			username, err := utils.ParseAdminToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			c.Set("username", username)
			return next(c)
		}
	}
}
