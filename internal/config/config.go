package config

import (
	"os"
	"strconv"
	"time"
)

// Config controls the scanner's behavior.
type Config struct {
	// Interface is the monitor-mode capture interface (e.g., wlan0mon).
	Interface string

	// ScannerID and Firmware identify this node in every output record.
	ScannerID string
	Firmware  string

	// Antenna is a free-form label describing the attached antenna,
	// surfaced in radio metadata.
	Antenna string

	// MaxChannels bounds the round-robin rotation (channels 1..MaxChannels).
	MaxChannels uint8
	// ChannelHopInterval is how long the scanner dwells on each channel.
	ChannelHopInterval time.Duration
	// StatsInterval is how often a stats record is emitted.
	StatsInterval time.Duration
	// SessionCeiling, when > 0, restarts the whole capture session after
	// this much uptime. Coarse fragmentation mitigation, not a fix.
	SessionCeiling time.Duration

	// SnapLen is the pcap snapshot length.
	SnapLen int

	// HeapBudget is the nominal heap allowance used to compute headroom.
	// HeapHeadroomMin is the headroom below which frames are dropped
	// before parsing (load-shedding, not queuing).
	HeapBudget      uint64
	HeapHeadroomMin uint64

	// MinFrameInterval skips classification for frames arriving closer
	// together than this, to bound CPU under probe storms.
	MinFrameInterval time.Duration

	// UseWallClock selects real timestamps. When false, capture_ts is an
	// uptime-derived placeholder and stats report timestamp_type "uptime".
	UseWallClock bool
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Interface:          "wlan0",
		ScannerID:          "GO_PROBE_001",
		Firmware:           "probescan-1.0.0",
		Antenna:            "internal",
		MaxChannels:        13,
		ChannelHopInterval: 500 * time.Millisecond,
		StatsInterval:      30 * time.Second,
		SessionCeiling:     0,
		SnapLen:            2048,
		HeapBudget:         64 << 20,
		HeapHeadroomMin:    1 << 20,
		MinFrameInterval:   2 * time.Millisecond,
		UseWallClock:       true,
	}
}

// Load builds a Config from defaults overridden by PROBESCAN_* environment
// variables. Unparseable values keep their defaults.
func Load() *Config {
	cfg := Default()

	if v := os.Getenv("PROBESCAN_INTERFACE"); v != "" {
		cfg.Interface = v
	}
	if v := os.Getenv("PROBESCAN_SCANNER_ID"); v != "" {
		cfg.ScannerID = v
	}
	if v := os.Getenv("PROBESCAN_FIRMWARE"); v != "" {
		cfg.Firmware = v
	}
	if v := os.Getenv("PROBESCAN_ANTENNA"); v != "" {
		cfg.Antenna = v
	}
	if n, ok := envInt("PROBESCAN_MAX_CHANNELS"); ok && n >= 1 && n <= 14 {
		cfg.MaxChannels = uint8(n)
	}
	if d, ok := envDuration("PROBESCAN_HOP_INTERVAL"); ok {
		cfg.ChannelHopInterval = d
	}
	if d, ok := envDuration("PROBESCAN_STATS_INTERVAL"); ok {
		cfg.StatsInterval = d
	}
	if d, ok := envDuration("PROBESCAN_SESSION_CEILING"); ok {
		cfg.SessionCeiling = d
	}
	if n, ok := envInt("PROBESCAN_SNAPLEN"); ok && n > 0 {
		cfg.SnapLen = n
	}
	if n, ok := envInt("PROBESCAN_HEAP_BUDGET"); ok && n > 0 {
		cfg.HeapBudget = uint64(n)
	}
	if n, ok := envInt("PROBESCAN_HEAP_HEADROOM_MIN"); ok && n >= 0 {
		cfg.HeapHeadroomMin = uint64(n)
	}
	if d, ok := envDuration("PROBESCAN_MIN_FRAME_INTERVAL"); ok {
		cfg.MinFrameInterval = d
	}
	if v := os.Getenv("PROBESCAN_WALL_CLOCK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UseWallClock = b
		}
	}

	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
