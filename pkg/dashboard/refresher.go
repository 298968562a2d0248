package dashboard

import (
	"context"
	"time"

	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
)

// Refresher keeps the dashboard cache warm by periodically forcing a
// refresh of a fixed set of timeframes.
type Refresher struct {
	assembler  *Assembler
	timeframes []string
	interval   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewRefresher creates a cache warmer for timeframes.
//
// Returns nil when interval is not positive, when no timeframes are given or
// when the assembler has no upstream configured. A nil Refresher is safe to
// Start and Stop.
func NewRefresher(assembler *Assembler, timeframes []string, interval time.Duration) *Refresher {
	if assembler == nil || !assembler.Configured() {
		logger.Infof("Dashboard refresher disabled: upstream not configured")
		return nil
	}
	if interval <= 0 || len(timeframes) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Refresher{
		assembler:  assembler,
		timeframes: timeframes,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start refreshes every timeframe immediately and then once per interval.
// It blocks until Stop is called.
func (r *Refresher) Start() {
	if r == nil || r.assembler == nil {
		return
	}

	logger.Infof("Starting dashboard refresher - interval: %v, timeframes: %v", r.interval, r.timeframes)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refreshAll()

	for {
		select {
		case <-ticker.C:
			r.refreshAll()
		case <-r.ctx.Done():
			logger.Infof("Dashboard refresher stopped")
			return
		}
	}
}

// Stop ends the refresh loop.
func (r *Refresher) Stop() {
	if r != nil && r.cancel != nil {
		r.cancel()
	}
}

func (r *Refresher) refreshAll() {
	for _, timeframe := range r.timeframes {
		if r.ctx.Err() != nil {
			return
		}
		data := r.assembler.Refresh(r.ctx, timeframe)
		if !data.IsLive {
			logger.Warnf("Dashboard refresh for %s returned fallback data (status: %s)", timeframe, data.APIStatus)
		}
	}
}
