package adminapi

import "github.com/gemtrack/gemtrack/internal/webserver"

// Init registers every admin API route on srv
func Init(srv *webserver.AdminServer) {
	registerAuthRoutes(srv)
	registerProductRoutes(srv)
	registerCategoryRoutes(srv)
	registerSupplierRoutes(srv)
	registerClientRoutes(srv)
	registerUserRoutes(srv)
	registerSearchRoutes(srv)
	registerSchedulerRoutes(srv)
}
