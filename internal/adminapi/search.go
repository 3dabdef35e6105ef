package adminapi

import (
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerSearchRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/search", globalSearch, requireAdmin)
}

// globalSearch matches products and clients against q in one call
func globalSearch(c echo.Context) error {
	res, err := GetServices(c).Search.GlobalSearch(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return failErr(c, err, "Search failed")
	}
	return ok(c, res)
}
