package fingerprint

import (
	"strconv"
	"strings"

	"probescan/internal/ie"
	"probescan/internal/models"
)

// Confidence is a fixed placeholder. The signature is purely structural,
// so there is no score to compute yet; the field exists so downstream
// schemas do not change when one lands.
const Confidence = 0.5

// Generate builds a deterministic capability-summary signature for coarse
// clustering of devices that share capability/vendor-IE shape. No hashing:
// the string concatenates, in fixed order, the HT marker, each vendor IE's
// OUI in encounter order, then the supported-rate list in encounter order.
func Generate(res ie.Result) models.Fingerprint {
	var sb strings.Builder

	if res.HT {
		sb.WriteString("HT+")
	}
	for _, v := range res.VendorIEs {
		sb.WriteString("VENDOR(")
		sb.WriteString(v.OUI)
		sb.WriteString(")+")
	}
	if len(res.SupportedRates) > 0 {
		sb.WriteString("rates(")
		for i, r := range res.SupportedRates {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(r)))
		}
		sb.WriteString(")")
	}

	return models.Fingerprint{
		IESignature: sb.String(),
		Confidence:  Confidence,
	}
}
