package capture

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"go.uber.org/zap"
)

// PcapDriver captures 802.11 frames from a monitor-mode interface via
// libpcap. Radiotap headers, when present, supply RSSI and the arrival
// channel; the 802.11 frame handed to the callback has them stripped.
type PcapDriver struct {
	iface   string
	handle  *pcap.Handle
	log     *zap.Logger
	channel atomic.Uint32
}

// NewPcapDriver opens the interface for live capture. The interface must
// already be in monitor mode.
func NewPcapDriver(iface string, snapLen int, log *zap.Logger) (*PcapDriver, error) {
	handle, err := pcap.OpenLive(iface, int32(snapLen), true, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", iface, err)
	}
	d := &PcapDriver{iface: iface, handle: handle, log: log}
	d.channel.Store(1)
	return d, nil
}

// Start launches the capture loop. Frames are delivered to fn from a
// single goroutine, satisfying the RadioDriver non-reentrancy contract.
func (d *PcapDriver) Start(ctx context.Context, fn FrameFunc) error {
	src := gopacket.NewPacketSource(d.handle, d.handle.LinkType())
	packets := src.Packets()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case pkt, ok := <-packets:
				if !ok {
					return
				}
				d.deliver(pkt, fn)
			}
		}
	}()
	return nil
}

func (d *PcapDriver) deliver(pkt gopacket.Packet, fn FrameFunc) {
	raw := pkt.Data()
	rssi := int8(0)
	channel := uint8(d.channel.Load())

	if rtLayer := pkt.Layer(layers.LayerTypeRadioTap); rtLayer != nil {
		if rt, ok := rtLayer.(*layers.RadioTap); ok {
			rssi = rt.DBMAntennaSignal
			if ch := FreqToChannel(int(rt.ChannelFrequency)); ch != 0 {
				channel = ch
			}
		}
		raw = rtLayer.LayerPayload()
	}

	fn(raw, rssi, channel)
}

// SetChannel tunes the interface via iw. Channel state is also cached so
// frames without radiotap channel info can still be attributed.
func (d *PcapDriver) SetChannel(ch uint8) error {
	out, err := exec.Command("iw", "dev", d.iface, "set", "channel", strconv.Itoa(int(ch))).CombinedOutput()
	if err != nil {
		return fmt.Errorf("set channel %d on %s: %w (%s)", ch, d.iface, err, out)
	}
	d.channel.Store(uint32(ch))
	return nil
}

func (d *PcapDriver) Close() error {
	d.handle.Close()
	return nil
}
