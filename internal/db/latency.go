package db

import (
	"context"
	"log/slog"
	"time"
)

const latencyReportLimit = 5

// QueryLatencyStats returns current per-query latency distribution samples.
func (c *Database) QueryLatencyStats() []queryLatencyStats {
	if c == nil || c.tracker == nil {
		return nil
	}
	return c.tracker.snapshot()
}

// LogLatencyStats logs the slowest queries every interval until ctx ends.
func (c *Database) LogLatencyStats(ctx context.Context, log *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		stats := c.QueryLatencyStats()
		if len(stats) > latencyReportLimit {
			stats = stats[:latencyReportLimit]
		}
		for _, entry := range stats {
			log.InfoContext(ctx, "db_query_latency",
				"query", entry.Name,
				"count", entry.Count,
				"p50_ms", entry.P50.Milliseconds(),
				"p95_ms", entry.P95.Milliseconds(),
				"max_ms", entry.Max.Milliseconds(),
			)
		}
	}
}
