package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LogEntry records a single handled request.
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// MonitoringService keeps an in-memory request log for the monitoring API.
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex
}

// NewMonitoringService creates a new MonitoringService.
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]LogEntry, 0),
	}
}

// LogRequest records one request.
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
}

// LoggingMiddleware records request information for every handled request,
// except the monitoring endpoints themselves.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// MonitoringSnapshot is aggregated request-log data for one period.
type MonitoringSnapshot struct {
	TotalRequests     int            `json:"total_requests"`
	Endpoints         map[string]int `json:"endpoints"`
	StatusCodes       map[int]int    `json:"status_codes"`
	AvgResponseTimeMs float64        `json:"avg_response_time_ms"`
	RecentErrors      []LogEntry     `json:"recent_errors"`
}

// Snapshot aggregates the logs recorded during the last periodHours hours.
func (s *MonitoringService) Snapshot(periodHours int) MonitoringSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	since := time.Now().Add(-time.Duration(periodHours) * time.Hour)

	snapshot := MonitoringSnapshot{
		Endpoints:    make(map[string]int),
		StatusCodes:  make(map[int]int),
		RecentErrors: make([]LogEntry, 0),
	}

	var totalResponseTime time.Duration
	for _, entry := range s.logs {
		if !entry.Timestamp.After(since) {
			continue
		}
		snapshot.TotalRequests++
		snapshot.Endpoints[entry.Method+" "+entry.Path]++
		snapshot.StatusCodes[entry.StatusCode]++
		totalResponseTime += entry.ResponseTime

		if entry.StatusCode >= 500 {
			snapshot.RecentErrors = append(snapshot.RecentErrors, entry)
		}
	}

	if snapshot.TotalRequests > 0 {
		snapshot.AvgResponseTimeMs = float64(totalResponseTime.Milliseconds()) / float64(snapshot.TotalRequests)
	}

	// Keep only the newest errors
	const maxRecentErrors = 20
	if len(snapshot.RecentErrors) > maxRecentErrors {
		snapshot.RecentErrors = snapshot.RecentErrors[len(snapshot.RecentErrors)-maxRecentErrors:]
	}

	return snapshot
}
