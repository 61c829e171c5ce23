package models

// CaptureRecord is the top-level output record emitted for every accepted
// probe-request frame. One JSON object per line, schema-stable: downstream
// consumers key on these field names.
type CaptureRecord struct {
	CaptureID string     `json:"capture_id"`
	CaptureTS string     `json:"capture_ts"`
	ScannerID string     `json:"scanner_id"`
	Firmware  string     `json:"firmware"`
	Packet    PacketData `json:"packet"`
}

// PacketData holds everything extracted from a single frame.
type PacketData struct {
	PktID string `json:"pkt_id"`

	Radio     RadioInfo     `json:"radio"`
	Ieee80211 Ieee80211Info `json:"ieee80211"`

	RSSIdBm     int8   `json:"rssi_dbm"`
	FrameRawHex string `json:"frame_raw_hex"`

	Probe ProbeInfo `json:"probe"`

	// Rate lists are uint16, not byte slices: encoding/json would render
	// []byte as a base64 string, and consumers expect number arrays.
	SupportedRates []uint16 `json:"supported_rates,omitempty"`
	ExtendedRates  []uint16 `json:"extended_rates,omitempty"`

	HTCapabilities  bool `json:"ht_capabilities,omitempty"`
	VHTCapabilities bool `json:"vht_capabilities,omitempty"`
	HECapabilities  bool `json:"he_capabilities,omitempty"`

	VendorIEs []VendorIE           `json:"vendor_ies"`
	IEsRaw    []InformationElement `json:"ies_raw"`

	MacRandomized  bool   `json:"mac_randomized"`
	OUI            string `json:"oui"`
	VendorInferred string `json:"vendor_inferred"`

	Fingerprint Fingerprint `json:"fingerprint"`
}

// RadioInfo describes the receive conditions reported by the radio driver.
type RadioInfo struct {
	Channel      uint8  `json:"channel"`
	FreqMHz      uint16 `json:"freq_mhz"`
	Band         string `json:"band"`
	BandwidthMHz uint8  `json:"bandwidth_mhz"`
	Antenna      string `json:"antenna"`
}

// Ieee80211Info carries the decoded management-frame header fields.
// SeqCtrl holds the 12-bit sequence number, not the raw 16-bit field.
type Ieee80211Info struct {
	Type     uint8  `json:"type"`
	Subtype  uint8  `json:"subtype"`
	Duration uint16 `json:"duration"`
	DA       string `json:"da"`
	SA       string `json:"sa"`
	BSSID    string `json:"bssid"`
	SeqCtrl  uint16 `json:"seq_ctrl"`
}

// ProbeInfo holds the SSID the client probed for. SSIDHidden is reserved
// for hidden-network detection; no code path sets it true yet.
type ProbeInfo struct {
	SSID       string `json:"ssid"`
	SSIDHidden bool   `json:"ssid_hidden"`
}

// VendorIE is a vendor-specific information element (tag 221).
// Data is the hex-encoded payload after the OUI and vendor type, capped.
type VendorIE struct {
	OUI        string `json:"oui"`
	VendorType uint8  `json:"vendor_type"`
	Data       string `json:"data"`
}

// InformationElement archives one raw IE verbatim. Value is hex-encoded
// and capped; Len is the length the element declared on the wire.
type InformationElement struct {
	ID    uint8  `json:"id"`
	Len   uint8  `json:"len"`
	Value string `json:"value"`
}

// Fingerprint is a coarse structural signature of the frame's
// capability and vendor-IE shape, for clustering similar devices.
type Fingerprint struct {
	IESignature string  `json:"ie_signature"`
	Confidence  float64 `json:"confidence"`
}

// StatsRecord is the periodic health line. It shares the output stream
// with capture records but uses a distinct prefix and type field.
type StatsRecord struct {
	Type           string `json:"type"`
	UptimeMs       int64  `json:"uptime_ms"`
	TotalPackets   uint64 `json:"total_packets"`
	ProbeRequests  uint64 `json:"probe_requests"`
	CurrentChannel uint8  `json:"current_channel"`
	ScannerID      string `json:"scanner_id"`
	CaptureID      string `json:"capture_id"`
	FreeHeap       uint64 `json:"free_heap"`
	MinFreeHeap    uint64 `json:"min_free_heap"`
	TimestampType  string `json:"timestamp_type"`
	CurrentTime    int64  `json:"current_time"`
}
