package adminapi

import (
	"net/http"
	"strings"

	"github.com/gemtrack/gemtrack/internal/service"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

// registerClientRoutes registers client records. They hold personal data, so
// every route is limited to administrators.
func registerClientRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/crm/clients", listClients, requireAdmin)
	srv.ApiGET("/crm/clients/:id", getClient, requireAdmin)
	srv.ApiPOST("/crm/clients", createClient, requireAdmin)
	srv.ApiPATCH("/crm/clients/:id", updateClient, requireAdmin)
	srv.ApiDELETE("/crm/clients/:id", deleteClient, requireAdmin)
}

func listClients(c echo.Context) error {
	ctx := c.Request().Context()
	clients := GetServices(c).Clients
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		rows, err := clients.SearchClients(ctx, q)
		if err != nil {
			return failErr(c, err, "Failed to search clients")
		}
		return ok(c, rows)
	}
	rows, err := clients.GetClientsList(ctx)
	if err != nil {
		return failErr(c, err, "Failed to query clients")
	}
	return ok(c, rows)
}

func getClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	client, err := GetServices(c).Clients.GetClientDetails(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to query client")
	}
	if client == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
	}
	return ok(c, client)
}

func createClient(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	input, err := service.DecodeClientInput(body)
	if err != nil {
		return failErr(c, err, "Invalid client")
	}
	client, err := GetServices(c).Clients.CreateNewClient(c.Request().Context(), input)
	if err != nil {
		return failErr(c, err, "Failed to create client")
	}
	return created(c, client)
}

func updateClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	patch, err := service.DecodeClientPatch(body)
	if err != nil {
		return failErr(c, err, "Invalid client")
	}
	client, err := GetServices(c).Clients.UpdateExistingClient(c.Request().Context(), id, patch)
	if err != nil {
		return failErr(c, err, "Failed to update client")
	}
	return ok(c, client)
}

func deleteClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	removed, err := GetServices(c).Clients.RemoveClient(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to delete client")
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}
