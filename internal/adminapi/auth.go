package adminapi

import (
	"net/http"
	"time"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

type loginPayload struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type passwordPayload struct {
	Current string `json:"current" validate:"required"`
	Next    string `json:"next" validate:"required,min=8"`
}

type loginResult struct {
	Token   string       `json:"token"`
	Expires time.Time    `json:"expires"`
	User    *domain.User `json:"user"`
}

func registerAuthRoutes(srv *webserver.AdminServer) {
	srv.PublicPOST("/login", login(srv))
	srv.ApiGET("/auth/me", currentUser)
	srv.ApiPUT("/auth/password", changePassword)
}

func login(srv *webserver.AdminServer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var payload loginPayload
		if err := c.Bind(&payload); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
		}
		if err := c.Validate(&payload); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", err.Error())
		}
		user, err := GetServices(c).Users.AuthenticateUser(c.Request().Context(), payload.Username, payload.Password)
		if err != nil {
			return failErr(c, err, "Login failed")
		}
		token, expires, err := srv.IssueToken(user)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
		}
		return ok(c, loginResult{Token: token, Expires: expires, User: user})
	}
}

func currentUser(c echo.Context) error {
	claims := webserver.CurrentClaims(c)
	user, err := GetServices(c).Users.GetUser(c.Request().Context(), claims.UserID())
	if err != nil {
		return failErr(c, err, "Failed to query user")
	}
	if user == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, user)
}

func changePassword(c echo.Context) error {
	var payload passwordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "New password must have at least 8 characters", err.Error())
	}
	claims := webserver.CurrentClaims(c)
	if err := GetServices(c).Users.ChangePassword(c.Request().Context(), claims.UserID(), payload.Current, payload.Next); err != nil {
		return failErr(c, err, "Failed to change password")
	}
	return c.NoContent(http.StatusNoContent)
}
