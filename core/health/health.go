package health

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
)

// DefaultTimeout bounds each readiness check.
const DefaultTimeout = 3 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Report is the readiness response body.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness reports that the process is serving requests.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Readiness runs all checks concurrently and answers 200 when every one passes,
// 503 otherwise. Checks with a nil Fn are skipped.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		report := Report{Status: "ready", Checks: make(map[string]string, len(checks))}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for _, c := range checks {
			if c.Fn == nil {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				cctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
				defer cancel()

				err := c.Fn(cctx)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.Status = "unavailable"
					report.Checks[c.Name] = "error"
					log.ErrorContext(ctx, "readiness check failed", logger.Component(c.Name), logger.Error(err))
					return
				}
				report.Checks[c.Name] = "ok"
			}()
		}
		wg.Wait()

		status := http.StatusOK
		if report.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		return response.JSONWithStatus(report, status)
	}
}
