// Package ie walks the tagged information-element sequence in a
// probe-request frame body. The walk is hand-rolled over raw bytes rather
// than delegated to gopacket's element decoder: it must keep going past
// malformed elements, truncate rather than reject oversized fields, and
// reproduce the fixed-parameter skip used by the deployed firmware fleet.
package ie

import (
	"encoding/hex"

	"probescan/internal/models"
)

// 802.11 information element tags handled by the extractor.
const (
	TagSSID            = 0
	TagSupportedRates  = 1
	TagHTCapabilities  = 45 // 802.11n
	TagExtendedRates   = 50
	TagVHTCapabilities = 191 // 802.11ac
	TagVendorSpecific  = 221
	TagExtension       = 255
)

// Extension element ids (tag 255).
const (
	ExtTagHECapabilities = 35 // 802.11ax
)

// Fixed caps. Lists drop silently beyond capacity; nothing resizes
// mid-parse.
const (
	// FixedParamsLen is skipped unconditionally before the IE walk:
	// 8 bytes timestamp + 2 beacon interval + 2 capability info. Probe
	// requests do not carry these fields, but the deployed extractor
	// skips them anyway and the emitted stream reflects that. Kept for
	// wire compatibility with existing captures.
	FixedParamsLen = 12

	MaxIEs         = 32
	MaxRates       = 16
	MaxVendorIEs   = 8
	MaxVendorData  = 64
	MaxRawValueLen = 64
	MaxSSIDLen     = 32

	htMinLen  = 26
	vhtMinLen = 12
	heMinLen  = 2
)

// Result holds everything the extractor pulled out of one frame body.
type Result struct {
	SSID           string
	SupportedRates []uint8
	ExtendedRates  []uint8
	HT             bool
	VHT            bool
	HE             bool
	VendorIEs      []models.VendorIE
	Raw            []models.InformationElement
}

// Extract walks the (id, len, value) tuples in body, which is the frame
// body immediately following the MAC header. It never reads past body,
// whatever lengths the elements declare; exhaustion and cap limits stop
// the walk, malformed elements do not.
func Extract(body []byte) Result {
	var res Result

	offset := FixedParamsLen
	for len(body)-offset >= 2 && len(res.Raw) < MaxIEs {
		id := body[offset]
		length := int(body[offset+1])
		if offset+2+length > len(body) {
			break
		}
		value := body[offset+2 : offset+2+length]

		res.Raw = append(res.Raw, archive(id, value))

		switch id {
		case TagSSID:
			if res.SSID == "" {
				res.SSID = printablePrefix(value)
			}
		case TagSupportedRates:
			res.SupportedRates = appendRates(res.SupportedRates, value)
		case TagExtendedRates:
			res.ExtendedRates = appendRates(res.ExtendedRates, value)
		case TagHTCapabilities:
			if length >= htMinLen {
				res.HT = true
			}
		case TagVHTCapabilities:
			if length >= vhtMinLen {
				res.VHT = true
			}
		case TagExtension:
			if length >= heMinLen && value[0] == ExtTagHECapabilities {
				res.HE = true
			}
		case TagVendorSpecific:
			if len(res.VendorIEs) < MaxVendorIEs && length >= 3 {
				res.VendorIEs = append(res.VendorIEs, vendorIE(value))
			}
		}

		offset += 2 + length
	}

	return res
}

// archive stores an IE verbatim, value capped. Len keeps the on-wire
// declared length even when the stored value is shorter.
func archive(id uint8, value []byte) models.InformationElement {
	capped := value
	if len(capped) > MaxRawValueLen {
		capped = capped[:MaxRawValueLen]
	}
	return models.InformationElement{
		ID:    id,
		Len:   uint8(len(value)),
		Value: hex.EncodeToString(capped),
	}
}

// printablePrefix copies ASCII bytes in [32,126] up to the SSID cap,
// stopping at the first byte outside that range. Truncation, not failure:
// the walk continues with the next element either way.
func printablePrefix(value []byte) string {
	n := len(value)
	if n > MaxSSIDLen {
		n = MaxSSIDLen
	}
	end := 0
	for ; end < n; end++ {
		if value[end] < 32 || value[end] > 126 {
			break
		}
	}
	return string(value[:end])
}

// appendRates adds entries up to the per-list cap, clearing the top
// (basic-rate) bit before storing.
func appendRates(dst []uint8, value []byte) []uint8 {
	for _, b := range value {
		if len(dst) >= MaxRates {
			break
		}
		dst = append(dst, b&0x7F)
	}
	return dst
}

func vendorIE(value []byte) models.VendorIE {
	v := models.VendorIE{
		OUI: hexOUI(value[0], value[1], value[2]),
	}
	if len(value) > 3 {
		v.VendorType = value[3]
		payload := value[4:]
		if len(payload) > MaxVendorData {
			payload = payload[:MaxVendorData]
		}
		v.Data = hex.EncodeToString(payload)
	}
	return v
}

func hexOUI(a, b, c byte) string {
	const hexDigits = "0123456789ABCDEF"
	buf := []byte{
		hexDigits[a>>4], hexDigits[a&0xF], ':',
		hexDigits[b>>4], hexDigits[b&0xF], ':',
		hexDigits[c>>4], hexDigits[c&0xF],
	}
	return string(buf)
}
