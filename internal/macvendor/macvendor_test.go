package macvendor

import "testing"

func TestIsRandomized(t *testing.T) {
	tests := []struct {
		first byte
		want  bool
	}{
		{0x02, true},  // locally administered
		{0xDA, true},  // typical iOS randomized prefix
		{0x28, false}, // Apple OUI
		{0x00, false},
		{0x01, false}, // multicast bit alone does not mean randomized
	}
	for _, tt := range tests {
		mac := [6]byte{tt.first, 0x11, 0x22, 0x33, 0x44, 0x55}
		if got := IsRandomized(mac); got != tt.want {
			t.Errorf("IsRandomized(first octet %#x) = %v, want %v", tt.first, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	mac := [6]byte{0x28, 0xE0, 0x2C, 0x0A, 0xBB, 0x05}
	if got := Format(mac); got != "28:E0:2C:0A:BB:05" {
		t.Errorf("Format = %q", got)
	}
}

func TestOUI(t *testing.T) {
	mac := [6]byte{0xF8, 0x1E, 0xDF, 0x01, 0x02, 0x03}
	if got := OUI(mac); got != "F8:1E:DF" {
		t.Errorf("OUI = %q", got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		oui  string
		want string
	}{
		{"00:16:01", "Android"},
		{"28:E0:2C", "Apple"},
		{"F8:1E:DF", "Apple"},
		{"18:3A:2D", "Samsung"},
		{"E8:50:8B", "Samsung"},
		{"DE:AD:BE", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := Lookup(tt.oui); got != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.oui, got, tt.want)
		}
	}
}
