package adminapi

import (
	"net/http"
	"strconv"

	"github.com/gemtrack/gemtrack/internal/app"
	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/repository"
	"github.com/gemtrack/gemtrack/internal/service"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Response standard success envelope
type Response struct {
	Data interface{} `json:"data"`
}

// ListResponse paginated envelope
type ListResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ErrorResponse error envelope
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Data: data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Data: data})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, ListResponse{Data: data, Total: total, Page: page, PageSize: pageSize})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}

// failErr maps a service error onto an HTTP status
func failErr(c echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", message, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", message, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", message, err.Error())
	case errors.Is(err, repository.ErrConstraintViolation):
		return fail(c, http.StatusConflict, "CONFLICT", message, err.Error())
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", message, err.Error())
	}
}

// parsePagination reads page and pageSize (or perPage) with sane bounds
func parsePagination(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	raw := c.QueryParam("pageSize")
	if raw == "" {
		raw = c.QueryParam("perPage")
	}
	pageSize, _ := strconv.Atoi(raw)
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// bindMap decodes a JSON body into a generic map for the service decoders
func bindMap(c echo.Context) (map[string]interface{}, error) {
	body := make(map[string]interface{})
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// GetServices returns the domain services of the running application
func GetServices(c echo.Context) *app.Services {
	return webserver.GetAppContext(c).Services()
}

// requireAdmin rejects tokens not issued to an administrator
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := webserver.CurrentClaims(c)
		if claims == nil || claims.Role != domain.RoleAdmin {
			return fail(c, http.StatusForbidden, "FORBIDDEN", "Administrator role required", nil)
		}
		return next(c)
	}
}
