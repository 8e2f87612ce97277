package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaydesk/handover-api/internal/api/metrics"
	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

// UserHandler handles the admin-only user management routes.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type listUsersResponse struct {
	Data []*domain.User `json:"data"`
}

// List returns all users without password hashes.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users})
}

// Create adds a new user account. Role defaults to "user".
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  userView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusCreated, userView{
		Username: user.Username,
		Role:     user.Role,
		Name:     user.DisplayName,
	})
}

// Delete removes a user and all their sessions.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  ackResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	username := c.Param("username")
	if err := h.userService.Delete(c.Request().Context(), username); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, ackResponse{Message: "user deleted"})
}
