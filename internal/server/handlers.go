package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/datasets"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/verify"
)

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleFeed runs the verification pipeline for one feed request.
// An upstream model failure maps to 502; zero verified claims is a valid
// 200 with empty items.
func HandleFeed(pipeline *verify.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.FeedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		if req.City == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
			return
		}

		resp, err := pipeline.Run(c.Request.Context(), req)
		if err != nil {
			slog.Error("feed pipeline failed",
				"request_id", c.GetString("request_id"),
				"city", req.City,
				"error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream model request failed"})
			return
		}

		slog.Info("feed request served",
			"request_id", c.GetString("request_id"),
			"city", req.City,
			"total", resp.Stats.TotalFound,
			"verified", resp.Stats.Verified,
			"rejected", resp.Stats.Rejected)
		c.JSON(http.StatusOK, resp)
	}
}

// ListDatasets lists the available snapshot names
func ListDatasets(store *datasets.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := store.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"datasets": names})
	}
}

// GetDataset returns one snapshot's records
func GetDataset(store *datasets.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := store.Get(c.Param("name"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// SearchDatasets searches all snapshots for a keyword
func SearchDatasets(store *datasets.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
			return
		}

		hits, err := store.Search(q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"query": q, "matches": len(hits), "results": hits})
	}
}

// RefreshDatasets re-downloads the configured snapshot sources
func RefreshDatasets(refresher *datasets.Refresher) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := refresher.Refresh(c.Request.Context())

		out := make([]gin.H, 0, len(results))
		failed := 0
		for _, r := range results {
			entry := gin.H{"name": r.Name, "bytes": r.Bytes}
			if r.Err != nil {
				entry["error"] = r.Err.Error()
				failed++
			}
			out = append(out, entry)
		}

		status := http.StatusOK
		if failed > 0 && failed == len(results) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"results": out})
	}
}
