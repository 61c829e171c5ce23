package capture

import "context"

// FrameFunc receives one raw 802.11 frame from the radio driver together
// with its RSSI and the channel it arrived on. The slice is only valid for
// the duration of the call; implementations must not retain it.
type FrameFunc func(raw []byte, rssi int8, channel uint8)

// RadioDriver abstracts the capture hardware. Drivers must invoke the
// frame callback from a single goroutine, never reentrantly: the monitor
// reuses per-frame state synchronously inside the callback chain and
// assumes the previous invocation has completed.
type RadioDriver interface {
	// Start begins frame delivery to fn and returns immediately.
	// Delivery stops when ctx is canceled or the driver is closed.
	Start(ctx context.Context, fn FrameFunc) error
	// SetChannel tunes the radio. Used by the capture scheduler.
	SetChannel(ch uint8) error
	Close() error
}
