// Package scheduler drives channel rotation and periodic stats emission.
// It owns the polling context of the concurrency model: it only reads the
// counters the capture callback writes.
package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"probescan/internal/capture"
	"probescan/internal/config"
	"probescan/internal/models"
)

// ErrSessionCeiling signals that the configured uptime ceiling was
// reached and the caller should tear down and start a fresh session.
var ErrSessionCeiling = errors.New("session uptime ceiling reached")

// ChannelSetter is the slice of the radio driver the scheduler needs.
type ChannelSetter interface {
	SetChannel(ch uint8) error
}

// StatsSink receives the periodic stats records.
type StatsSink interface {
	WriteStats(st *models.StatsRecord) error
}

// Scheduler rotates the capture channel round-robin on a fixed timer and
// emits a stats record on a longer one. No quality feedback: every
// channel gets the same dwell time.
type Scheduler struct {
	cfg      *config.Config
	log      *zap.Logger
	radio    ChannelSetter
	counters *capture.Counters
	sink     StatsSink

	captureID string
	start     time.Time
	channel   uint8
}

func New(cfg *config.Config, log *zap.Logger, radio ChannelSetter, counters *capture.Counters, sink StatsSink, captureID string) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		log:       log,
		radio:     radio,
		counters:  counters,
		sink:      sink,
		captureID: captureID,
		start:     time.Now(),
		channel:   1,
	}
}

// Channel returns the channel the scheduler last tuned to.
func (s *Scheduler) Channel() uint8 { return s.channel }

// Run blocks until ctx is canceled or the session ceiling fires. The
// ceiling returns ErrSessionCeiling; cancellation returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.radio.SetChannel(s.channel); err != nil {
		s.log.Warn("initial channel tune failed", zap.Uint8("channel", s.channel), zap.Error(err))
	}

	hop := time.NewTicker(s.cfg.ChannelHopInterval)
	defer hop.Stop()
	stats := time.NewTicker(s.cfg.StatsInterval)
	defer stats.Stop()

	var ceiling <-chan time.Time
	if s.cfg.SessionCeiling > 0 {
		t := time.NewTimer(s.cfg.SessionCeiling)
		defer t.Stop()
		ceiling = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hop.C:
			s.advance()
		case <-stats.C:
			s.emitStats()
		case <-ceiling:
			return ErrSessionCeiling
		}
	}
}

// advance moves to the next channel, wrapping to 1 after MaxChannels. A
// failed tune keeps the rotation going; the radio stays on its previous
// channel until the next tick.
func (s *Scheduler) advance() {
	s.channel = s.channel%s.cfg.MaxChannels + 1
	if err := s.radio.SetChannel(s.channel); err != nil {
		s.log.Warn("channel tune failed", zap.Uint8("channel", s.channel), zap.Error(err))
	}
}

func (s *Scheduler) emitStats() {
	now := time.Now()

	st := models.StatsRecord{
		Type:           "stats",
		UptimeMs:       now.Sub(s.start).Milliseconds(),
		TotalPackets:   s.counters.Total(),
		ProbeRequests:  s.counters.Probes(),
		CurrentChannel: s.channel,
		ScannerID:      s.cfg.ScannerID,
		CaptureID:      s.captureID,
		FreeHeap:       s.counters.FreeHeap(),
		MinFreeHeap:    s.counters.MinFreeHeap(),
	}
	if s.cfg.UseWallClock {
		st.TimestampType = "unix_epoch"
		st.CurrentTime = now.Unix()
	} else {
		st.TimestampType = "uptime"
		st.CurrentTime = st.UptimeMs
	}

	if err := s.sink.WriteStats(&st); err != nil {
		s.log.Warn("stats emit failed", zap.Error(err))
	}
}
