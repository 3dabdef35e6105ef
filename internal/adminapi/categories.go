package adminapi

import (
	"net/http"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

type categoryPayload struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func registerCategoryRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/inventory/categories", listCategories)
	srv.ApiGET("/inventory/categories/:id", getCategory)
	srv.ApiPOST("/inventory/categories", createCategory, requireAdmin)
	srv.ApiPUT("/inventory/categories/:id", updateCategory, requireAdmin)
	srv.ApiDELETE("/inventory/categories/:id", deleteCategory, requireAdmin)
}

func listCategories(c echo.Context) error {
	rows, err := GetServices(c).Categories.GetAllCategories(c.Request().Context())
	if err != nil {
		return failErr(c, err, "Failed to query categories")
	}
	return ok(c, rows)
}

func getCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	cat, err := GetServices(c).Categories.GetCategory(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to query category")
	}
	if cat == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}
	return ok(c, cat)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", err.Error())
	}
	cat, err := GetServices(c).Categories.CreateCategory(c.Request().Context(), payload.Name)
	if err != nil {
		return failErr(c, err, "Failed to create category")
	}
	return created(c, cat)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", err.Error())
	}
	cat, err := GetServices(c).Categories.UpdateCategory(c.Request().Context(), id, domain.CategoryPatch{Name: &payload.Name})
	if err != nil {
		return failErr(c, err, "Failed to update category")
	}
	return ok(c, cat)
}

func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	removed, err := GetServices(c).Categories.RemoveCategory(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to delete category")
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}
