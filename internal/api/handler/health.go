package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/iconidentify/shortsnext/internal/extract"
)

var startTime = time.Now()

// StrategySource reports which extraction strategies are wired.
type StrategySource interface {
	DefaultStrategy() extract.Strategy
	Strategies() []extract.Strategy
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	strategies StrategySource
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(strategies StrategySource) *HealthHandler {
	return &HealthHandler{
		strategies: strategies,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Strategy  string `json:"strategy,omitempty"`
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready - readiness probe.
// The service is ready once its default strategy has an extractor.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	def := h.strategies.DefaultStrategy()

	if !containsStrategy(h.strategies.Strategies(), def) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:    "error",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Strategy:  string(def),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Strategy:  string(def),
	})
}

// SystemStats contains process statistics.
type SystemStats struct {
	Uptime          int64    `json:"uptime_seconds"`
	UptimeHuman     string   `json:"uptime_human"`
	MemAllocMB      int64    `json:"mem_alloc_mb"`
	MemSysMB        int64    `json:"mem_sys_mb"`
	MemHeapMB       int64    `json:"mem_heap_mb"`
	NumGoroutines   int      `json:"num_goroutines"`
	NumCPU          int      `json:"num_cpu"`
	ProcessCPUPct   float64  `json:"process_cpu_pct"`
	ProcessRSSMB    int64    `json:"process_rss_mb"`
	HostMemUsedPct  float64  `json:"host_mem_used_pct"`
	DefaultStrategy string   `json:"default_strategy"`
	Strategies      []string `json:"strategies"`
}

// Stats handles GET /api/v1/stats - process statistics.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime)

	stats := SystemStats{
		Uptime:          int64(uptime.Seconds()),
		UptimeHuman:     formatUptime(uptime),
		MemAllocMB:      int64(m.Alloc / 1024 / 1024),
		MemSysMB:        int64(m.Sys / 1024 / 1024),
		MemHeapMB:       int64(m.HeapAlloc / 1024 / 1024),
		NumGoroutines:   runtime.NumGoroutine(),
		NumCPU:          runtime.NumCPU(),
		DefaultStrategy: string(h.strategies.DefaultStrategy()),
		Strategies:      []string{},
	}
	for _, s := range h.strategies.Strategies() {
		stats.Strategies = append(stats.Strategies, string(s))
	}

	// Best effort; unsupported platforms leave these at zero.
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if pct, err := proc.CPUPercent(); err == nil {
			stats.ProcessCPUPct = pct
		}
		if info, err := proc.MemoryInfo(); err == nil {
			stats.ProcessRSSMB = int64(info.RSS / 1024 / 1024)
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.HostMemUsedPct = vm.UsedPercent
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}

func containsStrategy(list []extract.Strategy, s extract.Strategy) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
