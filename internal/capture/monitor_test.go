package capture

import (
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"probescan/internal/config"
	"probescan/internal/frame"
	"probescan/internal/models"
)

type memorySink struct {
	records []models.CaptureRecord
}

func (s *memorySink) WriteRecord(rec *models.CaptureRecord) error {
	s.records = append(s.records, *rec)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.MinFrameInterval = 0
	cfg.HeapHeadroomMin = 0
	return cfg
}

func newTestMonitor(cfg *config.Config) (*Monitor, *memorySink) {
	sink := &memorySink{}
	return NewMonitor(cfg, zap.NewNop(), sink), sink
}

func buildProbeReq(sa [6]byte, seq uint16, body []byte) []byte {
	f := make([]byte, frame.HeaderLen+len(body))
	binary.LittleEndian.PutUint16(f[0:2], uint16(frame.SubtypeProbeReq)<<4)
	binary.LittleEndian.PutUint16(f[2:4], 0)
	broadcast := [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	copy(f[4:10], broadcast[:])
	copy(f[10:16], sa[:])
	copy(f[16:22], broadcast[:])
	binary.LittleEndian.PutUint16(f[22:24], seq<<4)
	copy(f[frame.HeaderLen:], body)
	return f
}

// probeBody prepends the fixed parameter bytes the extractor skips.
func probeBody(ies ...byte) []byte {
	return append(make([]byte, 12), ies...)
}

func TestHandleFrameRejectsNonProbe(t *testing.T) {
	mon, sink := newTestMonitor(testConfig())

	beacon := make([]byte, 64)
	binary.LittleEndian.PutUint16(beacon[0:2], 0x0080)
	mon.HandleFrame(beacon, -40, 6)

	if len(sink.records) != 0 {
		t.Fatalf("non-probe frame emitted %d records", len(sink.records))
	}
	if got := mon.Counters().Total(); got != 1 {
		t.Errorf("total counter = %d, want 1", got)
	}
	if got := mon.Counters().Probes(); got != 0 {
		t.Errorf("probe counter = %d, want 0", got)
	}
}

func TestHandleFrameAssemblesRecord(t *testing.T) {
	cfg := testConfig()
	mon, sink := newTestMonitor(cfg)

	sa := [6]byte{0x28, 0xE0, 0x2C, 0x01, 0x02, 0x03}
	raw := buildProbeReq(sa, 77, probeBody(
		0, 3, 'f', 'o', 'o',
		1, 2, 0x82, 0x84,
	))
	mon.HandleFrame(raw, -52, 6)

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	rec := sink.records[0]

	if rec.CaptureID != mon.CaptureID() {
		t.Errorf("capture_id = %q, want %q", rec.CaptureID, mon.CaptureID())
	}
	if rec.ScannerID != cfg.ScannerID || rec.Firmware != cfg.Firmware {
		t.Errorf("identity fields = %q/%q", rec.ScannerID, rec.Firmware)
	}

	p := rec.Packet
	if p.Probe.SSID != "foo" {
		t.Errorf("ssid = %q, want foo", p.Probe.SSID)
	}
	if p.Probe.SSIDHidden {
		t.Error("ssid_hidden must stay false")
	}
	if p.Ieee80211.SA != "28:E0:2C:01:02:03" {
		t.Errorf("sa = %q", p.Ieee80211.SA)
	}
	if p.Ieee80211.SeqCtrl != 77 {
		t.Errorf("seq = %d, want 77", p.Ieee80211.SeqCtrl)
	}
	if p.RSSIdBm != -52 {
		t.Errorf("rssi = %d, want -52", p.RSSIdBm)
	}
	if p.Radio.Channel != 6 || p.Radio.FreqMHz != 2437 {
		t.Errorf("radio = ch%d/%dMHz, want ch6/2437MHz", p.Radio.Channel, p.Radio.FreqMHz)
	}
	if p.Radio.Band != "2.4GHz" || p.Radio.BandwidthMHz != 20 {
		t.Errorf("band/bandwidth = %q/%d", p.Radio.Band, p.Radio.BandwidthMHz)
	}
	if p.MacRandomized {
		t.Error("OUI-addressed MAC flagged as randomized")
	}
	if p.OUI != "28:E0:2C" || p.VendorInferred != "Apple" {
		t.Errorf("oui/vendor = %q/%q", p.OUI, p.VendorInferred)
	}
	if len(p.SupportedRates) != 2 || p.SupportedRates[0] != 2 || p.SupportedRates[1] != 4 {
		t.Errorf("supported rates = %v, want [2 4]", p.SupportedRates)
	}
	if p.Fingerprint.IESignature != "rates(2,4)" {
		t.Errorf("fingerprint = %q", p.Fingerprint.IESignature)
	}
	if p.VendorIEs == nil || p.IEsRaw == nil {
		t.Error("vendor_ies / ies_raw must be arrays, not null")
	}
	if mon.Counters().Probes() != 1 {
		t.Errorf("probe counter = %d, want 1", mon.Counters().Probes())
	}
}

func TestHandleFrameRandomizedMAC(t *testing.T) {
	mon, sink := newTestMonitor(testConfig())

	sa := [6]byte{0xDA, 0x11, 0x22, 0x33, 0x44, 0x55}
	mon.HandleFrame(buildProbeReq(sa, 1, probeBody()), -70, 1)

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	p := sink.records[0].Packet
	if !p.MacRandomized {
		t.Error("locally administered MAC not flagged as randomized")
	}
	if p.VendorInferred != "Unknown" {
		t.Errorf("vendor = %q, want Unknown", p.VendorInferred)
	}
}

func TestPktIDsDistinctWithinSession(t *testing.T) {
	mon, sink := newTestMonitor(testConfig())

	sa := [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	mon.HandleFrame(buildProbeReq(sa, 1, probeBody()), -60, 3)
	mon.HandleFrame(buildProbeReq(sa, 2, probeBody()), -60, 3)

	if len(sink.records) != 2 {
		t.Fatalf("got %d records, want 2", len(sink.records))
	}
	a, b := sink.records[0], sink.records[1]
	if a.Packet.PktID == b.Packet.PktID {
		t.Errorf("pkt_id collision: %q", a.Packet.PktID)
	}
	if a.CaptureID != b.CaptureID {
		t.Errorf("capture_id changed within session: %q vs %q", a.CaptureID, b.CaptureID)
	}
}

func TestRateLimiterSkipsBurst(t *testing.T) {
	cfg := testConfig()
	cfg.MinFrameInterval = time.Hour
	mon, sink := newTestMonitor(cfg)

	sa := [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	mon.HandleFrame(buildProbeReq(sa, 1, probeBody()), -60, 1)
	mon.HandleFrame(buildProbeReq(sa, 2, probeBody()), -60, 1)

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	if got := mon.Counters().RateLimited(); got != 1 {
		t.Errorf("rate-limited counter = %d, want 1", got)
	}
	if got := mon.Counters().Total(); got != 2 {
		t.Errorf("total counter = %d, want 2", got)
	}
}

func TestAdmissionControlDropsUnderPressure(t *testing.T) {
	cfg := testConfig()
	cfg.HeapBudget = 1 // headroom is always zero
	cfg.HeapHeadroomMin = 1 << 20
	sink := &memorySink{}
	mon := NewMonitor(cfg, zap.NewNop(), sink)

	sa := [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	mon.HandleFrame(buildProbeReq(sa, 1, probeBody()), -60, 1)

	if len(sink.records) != 0 {
		t.Fatalf("frame parsed under memory pressure")
	}
	if got := mon.Counters().Dropped(); got != 1 {
		t.Errorf("dropped counter = %d, want 1", got)
	}
}

func TestHexSnapshotCapped(t *testing.T) {
	mon, sink := newTestMonitor(testConfig())

	sa := [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	big := make([]byte, 400)
	raw := buildProbeReq(sa, 1, probeBody(big...))
	mon.HandleFrame(raw, -60, 1)

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	hexLen := len(sink.records[0].Packet.FrameRawHex)
	if hexLen != maxHexSnapshotBytes*2 {
		t.Errorf("snapshot hex length = %d, want %d", hexLen, maxHexSnapshotBytes*2)
	}
}

func TestUptimeTimestampFallback(t *testing.T) {
	cfg := testConfig()
	cfg.UseWallClock = false
	mon, sink := newTestMonitor(cfg)

	sa := [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	mon.HandleFrame(buildProbeReq(sa, 1, probeBody()), -60, 1)

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	// Uptime fallback renders as a date anchored at the epoch.
	if ts := sink.records[0].CaptureTS; !strings.HasPrefix(ts, "1970-01-01T") {
		t.Errorf("uptime fallback timestamp = %q", ts)
	}
}

func TestTruncatedFrameEmitsNothing(t *testing.T) {
	mon, sink := newTestMonitor(testConfig())

	for n := 0; n < frame.HeaderLen; n++ {
		mon.HandleFrame(make([]byte, n), -60, 1)
	}
	if len(sink.records) != 0 {
		t.Fatalf("truncated frames emitted %d records", len(sink.records))
	}
}
