// Package pipeline turns a list of IPs into output rows, one per IP.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/internal/recency"
	"github.com/ppiankov/ipspectre/internal/reputation"
)

// Summary counts what happened during a run
type Summary struct {
	Total           int
	Failed          int
	TimestampErrors int
}

// Options configures an Enricher
type Options struct {
	Now func() time.Time
	Out io.Writer // progress and warning lines; nil discards them
}

// Enricher looks up each IP in order and accumulates rows
type Enricher struct {
	checker reputation.Checker
	now     func() time.Time
	out     io.Writer
}

// New creates a new enricher
func New(checker reputation.Checker, opts Options) *Enricher {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Enricher{checker: checker, now: now, out: out}
}

// Run processes ips sequentially. The returned rows match ips one to one.
// Lookup and timestamp failures are reported and produce null fields; only
// context cancellation stops the run.
func (e *Enricher) Run(ctx context.Context, ips []string) ([]models.Row, Summary, error) {
	rows := make([]models.Row, 0, len(ips))
	summary := Summary{Total: len(ips)}

	for i, ip := range ips {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}

		res := e.checker.Check(ctx, ip)
		if !res.OK() {
			summary.Failed++
			fmt.Fprintf(e.out, "⚠️  Lookup failed for %s: %v\n", ip, res.Err)
			slog.Warn("lookup failed",
				slog.String("ip", ip),
				slog.String("error", res.Err.Error()),
			)
			rows = append(rows, Accumulate(ip, res, nil))
			continue
		}

		elapsed, err := recency.Calculate(res.Record.LastReportedAt, e.now())
		if err != nil {
			summary.TimestampErrors++
			fmt.Fprintf(e.out, "⚠️  %s: %v\n", ip, err)
			slog.Warn("timestamp not parsed",
				slog.String("ip", ip),
				slog.String("error", err.Error()),
			)
		}

		rows = append(rows, Accumulate(ip, res, elapsed))
		slog.Debug("row accumulated", slog.Int("index", i), slog.String("ip", ip))
	}

	return rows, summary, nil
}

// Accumulate builds the output row for ip. A failed result yields a row with
// every derived field nil.
func Accumulate(ip string, res reputation.Result, elapsed *models.Elapsed) models.Row {
	row := models.Row{IP: ip}
	if !res.OK() {
		return row
	}

	score := res.Record.Score
	reports := res.Record.Reports
	row.Score = &score
	row.Reports = &reports
	if res.Record.LastReportedAt != nil {
		last := *res.Record.LastReportedAt
		row.LastUpdated = &last
	}

	if elapsed != nil {
		hours, weeks, months := elapsed.Hours, elapsed.Weeks, elapsed.Months
		row.Hours = &hours
		row.Weeks = &weeks
		row.Months = &months
	}

	return row
}
