package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
)

type scheduleEntry struct {
	ID   int       `json:"id"`
	Next time.Time `json:"next"`
	Prev time.Time `json:"prev"`
}

// registerSchedulerRoutes exposes the background jobs
func registerSchedulerRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/system/schedulers", ListSchedulers, requireAdmin)
	srv.ApiPOST("/system/schedulers/:id/run", TriggerScheduler, requireAdmin)
}

// ListSchedulers returns the registered cron entries
func ListSchedulers(c echo.Context) error {
	sched := webserver.GetAppContext(c).Scheduler()
	rows := make([]scheduleEntry, 0)
	if sched != nil {
		for _, e := range sched.Entries() {
			rows = append(rows, scheduleEntry{ID: int(e.ID), Next: e.Next, Prev: e.Prev})
		}
	}
	return ok(c, rows)
}

// TriggerScheduler runs a job immediately in the background
func TriggerScheduler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid scheduler ID", nil)
	}
	sched := webserver.GetAppContext(c).Scheduler()
	if sched == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Scheduler not found", nil)
	}
	entry := sched.Entry(cron.EntryID(id))
	if !entry.Valid() {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Scheduler not found", nil)
	}
	go entry.Job.Run()
	return c.NoContent(http.StatusNoContent)
}
