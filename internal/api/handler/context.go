package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// identity is the resolved session view the Auth middleware leaves in the
// echo context.
type identity struct {
	Username  string
	Role      string
	Name      string
	LoginTime time.Time
}

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails when the middleware did not run: a non-empty username proves the
// request passed session validation.
func ctxIdentity(c echo.Context) (identity, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	name, _ := c.Get("name").(string)
	loginTime, _ := c.Get("login_time").(time.Time)

	return identity{Username: username, Role: role, Name: name, LoginTime: loginTime}, nil
}
