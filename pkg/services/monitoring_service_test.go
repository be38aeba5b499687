package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLoggingMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := NewMonitoringService()

	router := gin.New()
	router.Use(service.LoggingMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/monitoring/logs", func(c *gin.Context) {
		c.JSON(http.StatusOK, service.Snapshot(24))
	})

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	// Monitoring endpoints themselves are not recorded.
	req, _ := http.NewRequest("GET", "/monitoring/logs", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	snapshot := service.Snapshot(24)
	if snapshot.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, expected 3", snapshot.TotalRequests)
	}
	if snapshot.Endpoints["GET /"] != 3 {
		t.Errorf("Endpoints[GET /] = %d, expected 3", snapshot.Endpoints["GET /"])
	}
	if snapshot.StatusCodes[http.StatusOK] != 3 {
		t.Errorf("StatusCodes[200] = %d, expected 3", snapshot.StatusCodes[http.StatusOK])
	}
	if len(snapshot.RecentErrors) != 0 {
		t.Errorf("RecentErrors = %v, expected none", snapshot.RecentErrors)
	}
}

func TestSnapshotCollectsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := NewMonitoringService()

	router := gin.New()
	router.Use(service.LoggingMiddleware())
	router.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	snapshot := service.Snapshot(24)
	if len(snapshot.RecentErrors) != 1 {
		t.Fatalf("RecentErrors = %d, expected 1", len(snapshot.RecentErrors))
	}
	if snapshot.RecentErrors[0].Path != "/boom" {
		t.Errorf("error path = %q", snapshot.RecentErrors[0].Path)
	}
}
