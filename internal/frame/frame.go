package frame

import "encoding/binary"

// IEEE 802.11 frame control types and the one subtype this scanner admits.
const (
	TypeManagement  = 0
	SubtypeProbeReq = 4

	// HeaderLen is the management-frame MAC header: frame control,
	// duration, three addresses, sequence control.
	HeaderLen = 24
)

// Header holds the decoded management-frame MAC header.
type Header struct {
	Type     uint8
	Subtype  uint8
	Duration uint16
	DA       [6]byte // addr1, receiver
	SA       [6]byte // addr2, transmitter
	BSSID    [6]byte // addr3
	SeqNum   uint16  // bits 4-15 of sequence control
}

// Classify inspects the frame-control field and admits only management
// probe-request frames. It fails closed: frames shorter than the MAC
// header are rejected without touching any other byte. Rejection is
// expected filtering, not an error.
func Classify(raw []byte) (Header, bool) {
	var hdr Header
	if len(raw) < HeaderLen {
		return hdr, false
	}

	fc := binary.LittleEndian.Uint16(raw[0:2])
	hdr.Type = uint8((fc >> 2) & 0x3)
	hdr.Subtype = uint8((fc >> 4) & 0xF)
	if hdr.Type != TypeManagement || hdr.Subtype != SubtypeProbeReq {
		return hdr, false
	}

	hdr.Duration = binary.LittleEndian.Uint16(raw[2:4])
	copy(hdr.DA[:], raw[4:10])
	copy(hdr.SA[:], raw[10:16])
	copy(hdr.BSSID[:], raw[16:22])
	hdr.SeqNum = binary.LittleEndian.Uint16(raw[22:24]) >> 4

	return hdr, true
}

// Body returns the frame body following the MAC header. Callers must only
// invoke this after Classify accepted the frame.
func Body(raw []byte) []byte {
	return raw[HeaderLen:]
}
