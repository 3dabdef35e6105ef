package adminapi

import (
	"net/http"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/service"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

type permissionsPayload struct {
	Permissions []domain.Permission `json:"permissions"`
}

type departmentsPayload struct {
	Departments []domain.Department `json:"departments"`
}

func registerUserRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/system/users", listUsers, requireAdmin)
	srv.ApiGET("/system/admins/:id", getAdmin, requireAdmin)
	srv.ApiPOST("/system/admins", createAdmin, requireAdmin)
	srv.ApiPUT("/system/admins/:id/permissions", setAdminPermissions, requireAdmin)
	srv.ApiPUT("/system/admins/:id/departments", setAdminDepartments, requireAdmin)
	srv.ApiPOST("/system/users/:id/deactivate", deactivateUser, requireAdmin)
}

func listUsers(c echo.Context) error {
	rows, err := GetServices(c).Users.GetAllUsers(c.Request().Context())
	if err != nil {
		return failErr(c, err, "Failed to query users")
	}
	return ok(c, rows)
}

func getAdmin(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid admin ID", nil)
	}
	admin, err := GetServices(c).Users.GetAdmin(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to query admin")
	}
	if admin == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Admin not found", nil)
	}
	return ok(c, admin)
}

func createAdmin(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse admin", err.Error())
	}
	input, err := service.DecodeAdminInput(body)
	if err != nil {
		return failErr(c, err, "Invalid admin")
	}
	admin, err := GetServices(c).Users.CreateAdmin(c.Request().Context(), input)
	if err != nil {
		return failErr(c, err, "Failed to create admin")
	}
	return created(c, admin)
}

func setAdminPermissions(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid admin ID", nil)
	}
	var payload permissionsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse permissions", err.Error())
	}
	admin, err := GetServices(c).Users.SetPermissions(c.Request().Context(), id, payload.Permissions)
	if err != nil {
		return failErr(c, err, "Failed to update permissions")
	}
	return ok(c, admin)
}

func setAdminDepartments(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid admin ID", nil)
	}
	var payload departmentsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse departments", err.Error())
	}
	admin, err := GetServices(c).Users.SetDepartments(c.Request().Context(), id, payload.Departments)
	if err != nil {
		return failErr(c, err, "Failed to update departments")
	}
	return ok(c, admin)
}

func deactivateUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	if claims := webserver.CurrentClaims(c); claims != nil && claims.UserID() == id {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot deactivate the current user", nil)
	}
	user, err := GetServices(c).Users.DeactivateUser(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to deactivate user")
	}
	return ok(c, user)
}
