package adminapi

import (
	"net/http"

	"github.com/gemtrack/gemtrack/internal/service"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerSupplierRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/inventory/suppliers", listSuppliers)
	srv.ApiGET("/inventory/suppliers/:id", getSupplier)
	srv.ApiPOST("/inventory/suppliers", createSupplier, requireAdmin)
	srv.ApiPATCH("/inventory/suppliers/:id", updateSupplier, requireAdmin)
	srv.ApiDELETE("/inventory/suppliers/:id", deleteSupplier, requireAdmin)
}

func listSuppliers(c echo.Context) error {
	rows, err := GetServices(c).Suppliers.GetAllSuppliers(c.Request().Context())
	if err != nil {
		return failErr(c, err, "Failed to query suppliers")
	}
	return ok(c, rows)
}

func getSupplier(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	s, err := GetServices(c).Suppliers.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to query supplier")
	}
	if s == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found", nil)
	}
	return ok(c, s)
}

func createSupplier(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse supplier", err.Error())
	}
	input, err := service.DecodeSupplierInput(body)
	if err != nil {
		return failErr(c, err, "Invalid supplier")
	}
	s, err := GetServices(c).Suppliers.CreateSupplier(c.Request().Context(), input)
	if err != nil {
		return failErr(c, err, "Failed to create supplier")
	}
	return created(c, s)
}

func updateSupplier(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse supplier", err.Error())
	}
	patch, err := service.DecodeSupplierPatch(body)
	if err != nil {
		return failErr(c, err, "Invalid supplier")
	}
	s, err := GetServices(c).Suppliers.UpdateSupplier(c.Request().Context(), id, patch)
	if err != nil {
		return failErr(c, err, "Failed to update supplier")
	}
	return ok(c, s)
}

// deleteSupplier removes the supplier; its products stay without one.
func deleteSupplier(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	removed, err := GetServices(c).Suppliers.RemoveSupplier(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to delete supplier")
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}
