package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
)

type SystemHandler struct {
	DB *sql.DB
}

type DashboardHandler struct {
	Dashboard DashboardService
}

func (h SystemHandler) Health(c *gin.Context) {
	response.OK(c, http.StatusOK, "service is running", gin.H{"status": "ok"})
}

// DBCheck pings the database and reports which required tables exist.
func (h SystemHandler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		response.Fail(c, http.StatusServiceUnavailable, "database not connected")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		logger.Error("db check ping failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	tables := make(map[string]bool, len(intdb.RequiredTables))
	var missing []response.FieldError
	for _, t := range intdb.RequiredTables {
		ok := intdb.HasTable(ctx, h.DB, t)
		tables[t] = ok
		if !ok {
			missing = append(missing, response.FieldError{Field: t, Message: "table is missing"})
		}
	}
	if len(missing) > 0 {
		response.Fail(c, http.StatusServiceUnavailable, "database schema incomplete", missing...)
		return
	}
	response.OK(c, http.StatusOK, "database connection ok", gin.H{"tables": tables})
}

func (h DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "dashboard retrieved", stats)
}
