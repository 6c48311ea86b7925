package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/logger"
	"github.com/familiez/humans-service/pkg/types"
)

// timestampMillis is the wire format for timestamps: local time with
// millisecond precision and no zone designator.
const timestampMillis = "2006-01-02T15:04:05.000"

type PingHandler struct {
	queries Querier
}

func NewPingHandler(queries Querier) *PingHandler {
	return &PingHandler{queries: queries}
}

// GetRoot greets callers so clients can validate connectivity.
// GET /
func (h *PingHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello visitor": "The Familiez humans API lives!"})
}

// GetPingAPI echoes the frontend timestamp next to the middleware's own.
// GET /pingAPI?timestampFE=...
func (h *PingHandler) GetPingAPI(c *gin.Context) {
	tsFE, ok := timestampParam(c, "timestampFE")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, []types.PingAPIResponse{{
		FERequestTime: tsFE.Format(timestampMillis),
		MWRequestTime: time.Now().Format(timestampMillis),
	}})
}

// GetPingDB round-trips the timestamps through the database and appends the
// middleware answer time to the last row.
// GET /pingDB?timestampFE=...
func (h *PingHandler) GetPingDB(c *gin.Context) {
	tsFE, ok := timestampParam(c, "timestampFE")
	if !ok {
		return
	}

	tsMW := time.Now()
	records, err := h.queries.PingDatabase(c.Request.Context(), tsFE, tsMW)
	if err != nil {
		logger.Errorf("Error pinging database: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Database connection failed"})
		return
	}

	if len(records) > 0 {
		records[len(records)-1]["datetimeMWanswer"] = time.Now().Format(timestampMillis)
	}
	c.JSON(http.StatusOK, records)
}

// timestampParam parses a required timestamp query parameter. RFC3339 and
// the zone-less millisecond format are both accepted.
func timestampParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: name + " is required"})
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		timestampMillis,
		"2006-01-02T15:04:05",
	} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "invalid " + name})
	return time.Time{}, false
}
