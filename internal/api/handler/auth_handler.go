package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/relaydesk/handover-api/internal/api/metrics"
	"github.com/relaydesk/handover-api/internal/api/middleware"
	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userView struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type sessionResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	LoginTime time.Time `json:"login_time"`
}

type ackResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and returns an opaque session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  userView{Username: user.Username, Role: user.Role, Name: user.DisplayName},
	})
}

// Logout deletes the session identified by the bearer token. It is
// idempotent: a missing or unknown token still acknowledges success.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ackResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.BearerToken(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Message: "logged out"})
}

// Session returns the session view attached by the Auth middleware.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Username:  id.Username,
		Role:      id.Role,
		Name:      id.Name,
		LoginTime: id.LoginTime,
	})
}
