package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibpath/vibgate/internal/prefs"
)

// API is the management REST surface over user preferences and the cache.
type API struct {
	prefs *prefs.Service
}

func NewAPI(svc *prefs.Service) *API {
	return &API{prefs: svc}
}

// Register mounts the management routes on the given router group.
func (a *API) Register(r gin.IRouter) {
	r.GET("/health", a.health)
	r.GET("/api/users", a.listUsers)
	r.GET("/api/users/:id/preferences", a.getPreference)
	r.PUT("/api/users/:id/preferences", a.putPreference)
	r.DELETE("/api/users/:id/preferences", a.deletePreference)
	r.GET("/api/cache/stats", a.cacheStats)
	r.POST("/api/cache/clear", a.clearCache)
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"storeConnected": a.prefs.StoreConnected(),
	})
}

func (a *API) listUsers(c *gin.Context) {
	if !a.prefs.StoreConnected() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preference store unavailable"})
		return
	}
	users, err := a.prefs.List(c.Request.Context())
	if err != nil {
		slog.Error("list preferences failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (a *API) getPreference(c *gin.Context) {
	userID := c.Param("id")
	enabled := a.prefs.IsAIReplyEnabled(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"userId":         userID,
		"aiReplyEnabled": enabled,
	})
}

type putPreferenceRequest struct {
	AIReplyEnabled *bool `json:"aiReplyEnabled"`
}

func (a *API) putPreference(c *gin.Context) {
	var req putPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AIReplyEnabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aiReplyEnabled (bool) is required"})
		return
	}
	userID := c.Param("id")
	if !a.prefs.SetAIReplyStatus(c.Request.Context(), userID, *req.AIReplyEnabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preference store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":         userID,
		"aiReplyEnabled": *req.AIReplyEnabled,
	})
}

func (a *API) deletePreference(c *gin.Context) {
	userID := c.Param("id")
	if err := a.prefs.Delete(c.Request.Context(), userID); err != nil {
		slog.Error("delete preference failed", "user_id", userID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preference store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "deleted": true})
}

func (a *API) cacheStats(c *gin.Context) {
	stats := a.prefs.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"size":           stats.Size,
		"oldestEntryAge": stats.OldestEntryAge.Seconds(),
		"storeConnected": a.prefs.StoreConnected(),
	})
}

func (a *API) clearCache(c *gin.Context) {
	a.prefs.ClearCache()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
