package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

const defaultHealthTimeout = 2 * time.Second

// Pinger is a dependency that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status        string            `json:"status"`
	API           string            `json:"api"`
	Dependencies  map[string]string `json:"dependencies,omitempty"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Timestamp     string            `json:"timestamp"`
}

// HealthHandler pings every registered dependency concurrently.
type HealthHandler struct {
	deps    map[string]Pinger
	started time.Time
	timeout time.Duration
	now     func() time.Time
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		started: time.Now(),
		timeout: defaultHealthTimeout,
		now:     time.Now,
	}
}

// Health handles GET /health. Any failing dependency turns the response into 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]string, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, p Pinger) {
			defer wg.Done()
			if err := p.Ping(ctx); err != nil {
				results[i] = "unavailable"
				return
			}
			results[i] = "ok"
		}(i, h.deps[name])
	}
	wg.Wait()

	resp := HealthResponse{
		Status:        "ok",
		API:           "ok",
		UptimeSeconds: int64(h.now().Sub(h.started).Seconds()),
		Timestamp:     h.now().UTC().Format(timeLayout),
	}
	if len(names) > 0 {
		resp.Dependencies = make(map[string]string, len(names))
	}
	for i, name := range names {
		resp.Dependencies[name] = results[i]
		if results[i] != "ok" {
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	JSON(w, status, resp)
}
