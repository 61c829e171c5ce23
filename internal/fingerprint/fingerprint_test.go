package fingerprint

import (
	"testing"

	"probescan/internal/ie"
	"probescan/internal/models"
)

func TestGenerateFullSignature(t *testing.T) {
	res := ie.Result{
		HT: true,
		VendorIEs: []models.VendorIE{
			{OUI: "00:50:F2"},
			{OUI: "00:17:F2"},
		},
		SupportedRates: []uint8{2, 4, 11},
	}
	fp := Generate(res)
	want := "HT+VENDOR(00:50:F2)+VENDOR(00:17:F2)+rates(2,4,11)"
	if fp.IESignature != want {
		t.Errorf("signature = %q, want %q", fp.IESignature, want)
	}
	if fp.Confidence != Confidence {
		t.Errorf("confidence = %v, want %v", fp.Confidence, Confidence)
	}
}

func TestGeneratePreservesVendorEncounterOrder(t *testing.T) {
	a := ie.Result{VendorIEs: []models.VendorIE{{OUI: "AA:AA:AA"}, {OUI: "BB:BB:BB"}}}
	b := ie.Result{VendorIEs: []models.VendorIE{{OUI: "BB:BB:BB"}, {OUI: "AA:AA:AA"}}}
	if Generate(a).IESignature == Generate(b).IESignature {
		t.Error("signatures should differ when vendor IE order differs")
	}
}

func TestGenerateEmpty(t *testing.T) {
	fp := Generate(ie.Result{})
	if fp.IESignature != "" {
		t.Errorf("signature = %q, want empty", fp.IESignature)
	}
}

func TestGenerateRatesOnly(t *testing.T) {
	fp := Generate(ie.Result{SupportedRates: []uint8{2}})
	if fp.IESignature != "rates(2)" {
		t.Errorf("signature = %q, want %q", fp.IESignature, "rates(2)")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	res := ie.Result{HT: true, SupportedRates: []uint8{2, 4}}
	if Generate(res) != Generate(res) {
		t.Error("same input produced different fingerprints")
	}
}
