package capture

import (
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"probescan/internal/config"
	"probescan/internal/fingerprint"
	"probescan/internal/frame"
	"probescan/internal/ie"
	"probescan/internal/macvendor"
	"probescan/internal/models"
)

// maxHexSnapshotBytes caps the raw-hex copy of the frame stored in each
// record. Bounded memory wins over forensic completeness here.
const maxHexSnapshotBytes = 128

// RecordSink receives completed capture records. Records are immutable
// once handed over; the monitor never touches one after WriteRecord.
type RecordSink interface {
	WriteRecord(rec *models.CaptureRecord) error
}

// Monitor is the per-frame pipeline: admission control, rate limiting,
// classification, record assembly, emission. HandleFrame is the radio
// driver's callback and must only be invoked from one goroutine at a time
// (the RadioDriver contract).
type Monitor struct {
	cfg  *config.Config
	log  *zap.Logger
	sink RecordSink

	counters     *Counters
	captureID    string
	sessionStart time.Time
	hostID       uint32

	pktSeq    atomic.Uint64
	lastFrame atomic.Int64
}

// NewMonitor creates a monitor for one capture session. The capture id is
// generated here, once, and stamps every record of the session.
func NewMonitor(cfg *config.Config, log *zap.Logger, sink RecordSink) *Monitor {
	return &Monitor{
		cfg:          cfg,
		log:          log,
		sink:         sink,
		counters:     NewCounters(cfg.HeapBudget),
		captureID:    uuid.NewString(),
		sessionStart: time.Now(),
		hostID:       hostID(),
	}
}

// CaptureID returns the session-scoped capture id.
func (m *Monitor) CaptureID() string { return m.captureID }

// Counters exposes the shared counter state for the stats scheduler.
func (m *Monitor) Counters() *Counters { return m.counters }

// HandleFrame processes one raw 802.11 frame. Non-probe-request frames
// bump only the total counter. Frames arriving under memory pressure or
// inside the minimum inter-arrival window are dropped before parsing; a
// dropped or rejected frame never produces partial output.
func (m *Monitor) HandleFrame(raw []byte, rssi int8, channel uint8) {
	m.counters.CountFrame()

	if m.counters.FreeHeap() < m.cfg.HeapHeadroomMin {
		m.counters.CountDropped()
		return
	}

	now := time.Now()
	if m.cfg.MinFrameInterval > 0 {
		last := m.lastFrame.Load()
		if last != 0 && now.UnixNano()-last < int64(m.cfg.MinFrameInterval) {
			m.counters.CountRateLimited()
			return
		}
	}
	m.lastFrame.Store(now.UnixNano())

	hdr, ok := frame.Classify(raw)
	if !ok {
		return
	}
	m.counters.CountProbe()

	rec := m.assemble(raw, hdr, rssi, channel, now)
	if err := m.sink.WriteRecord(&rec); err != nil {
		m.log.Warn("record emit failed", zap.Error(err))
	}
}

// assemble builds the complete record for an accepted frame. Every field
// is populated before the record leaves this function; nothing downstream
// mutates it.
func (m *Monitor) assemble(raw []byte, hdr frame.Header, rssi int8, channel uint8, now time.Time) models.CaptureRecord {
	ext := ie.Extract(frame.Body(raw))

	snapshot := raw
	if len(snapshot) > maxHexSnapshotBytes {
		snapshot = snapshot[:maxHexSnapshotBytes]
	}

	vendorIEs := ext.VendorIEs
	if vendorIEs == nil {
		vendorIEs = []models.VendorIE{}
	}
	iesRaw := ext.Raw
	if iesRaw == nil {
		iesRaw = []models.InformationElement{}
	}

	oui := macvendor.OUI(hdr.SA)

	return models.CaptureRecord{
		CaptureID: m.captureID,
		CaptureTS: m.captureTS(now),
		ScannerID: m.cfg.ScannerID,
		Firmware:  m.cfg.Firmware,
		Packet: models.PacketData{
			PktID: m.nextPktID(now),
			Radio: models.RadioInfo{
				Channel:      channel,
				FreqMHz:      ChannelFreq(channel),
				Band:         band24GHz,
				BandwidthMHz: bandwidthMHz,
				Antenna:      m.cfg.Antenna,
			},
			Ieee80211: models.Ieee80211Info{
				Type:     hdr.Type,
				Subtype:  hdr.Subtype,
				Duration: hdr.Duration,
				DA:       macvendor.Format(hdr.DA),
				SA:       macvendor.Format(hdr.SA),
				BSSID:    macvendor.Format(hdr.BSSID),
				SeqCtrl:  hdr.SeqNum,
			},
			RSSIdBm:     rssi,
			FrameRawHex: hex.EncodeToString(snapshot),
			Probe: models.ProbeInfo{
				SSID:       ext.SSID,
				SSIDHidden: false,
			},
			SupportedRates:  rateList(ext.SupportedRates),
			ExtendedRates:   rateList(ext.ExtendedRates),
			HTCapabilities:  ext.HT,
			VHTCapabilities: ext.VHT,
			HECapabilities:  ext.HE,
			VendorIEs:       vendorIEs,
			IEsRaw:          iesRaw,
			MacRandomized:   macvendor.IsRandomized(hdr.SA),
			OUI:             oui,
			VendorInferred:  macvendor.Lookup(oui),
			Fingerprint:     fingerprint.Generate(ext),
		},
	}
}

// captureTS formats the record timestamp. Without a wall clock the value
// is elapsed uptime rendered as a calendar date anchored at the epoch:
// non-chronological across sessions, a known limitation carried over from
// RTC-less deployments.
func (m *Monitor) captureTS(now time.Time) string {
	if m.cfg.UseWallClock {
		return now.UTC().Format(time.RFC3339)
	}
	return time.Unix(0, 0).UTC().Add(now.Sub(m.sessionStart)).Format(time.RFC3339)
}

// nextPktID derives a per-frame id from the current time, a host-unique
// id, and a monotonically increasing counter. Collisions within a session
// are negligible; this is not a cryptographic id.
func (m *Monitor) nextPktID(now time.Time) string {
	return fmt.Sprintf("%d-%08x-%d", now.UnixMilli(), m.hostID, m.pktSeq.Add(1))
}

// rateList widens extracted rates for the record schema, where they must
// serialize as a number array rather than a base64 byte string.
func rateList(rates []uint8) []uint16 {
	if len(rates) == 0 {
		return nil
	}
	out := make([]uint16, len(rates))
	for i, r := range rates {
		out[i] = uint16(r)
	}
	return out
}

func hostID() uint32 {
	h := fnv.New32a()
	name, _ := os.Hostname()
	fmt.Fprintf(h, "%s/%d", name, os.Getpid())
	return h.Sum32()
}
