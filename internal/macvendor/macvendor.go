package macvendor

import "fmt"

// Unknown is returned for OUIs absent from the vendor table.
const Unknown = "Unknown"

type vendorEntry struct {
	oui  string
	name string
}

// Known OUI prefixes for common mobile-device vendors. Ordered, first
// match wins. Misses resolve to Unknown rather than an error.
var knownVendors = []vendorEntry{
	{"00:16:01", "Android"},
	{"00:1B:63", "Apple"},
	{"00:23:12", "Apple"},
	{"00:25:00", "Apple"},
	{"28:E0:2C", "Apple"},
	{"3C:15:C2", "Apple"},
	{"40:A6:D9", "Apple"},
	{"64:20:9F", "Apple"},
	{"68:96:7B", "Apple"},
	{"70:56:81", "Apple"},
	{"7C:6D:62", "Apple"},
	{"88:63:DF", "Apple"},
	{"90:B0:ED", "Apple"},
	{"A4:5E:60", "Apple"},
	{"AC:BC:32", "Apple"},
	{"BC:52:B7", "Apple"},
	{"D0:A6:37", "Apple"},
	{"E8:8D:28", "Apple"},
	{"F0:98:9D", "Apple"},
	{"F4:0F:24", "Apple"},
	{"F8:1E:DF", "Apple"},
	{"18:3A:2D", "Samsung"},
	{"1C:62:B8", "Samsung"},
	{"34:23:87", "Samsung"},
	{"38:AA:3C", "Samsung"},
	{"40:4E:36", "Samsung"},
	{"5C:0A:5B", "Samsung"},
	{"78:1F:DB", "Samsung"},
	{"8C:45:00", "Samsung"},
	{"A0:02:DC", "Samsung"},
	{"C8:19:F7", "Samsung"},
	{"E8:50:8B", "Samsung"},
}

// IsRandomized reports whether the MAC is locally administered (bit 1 of
// the first octet), the mechanism behind MAC randomization.
func IsRandomized(mac [6]byte) bool {
	return mac[0]&0x02 != 0
}

// OUI formats the first three octets as a colon-separated prefix.
func OUI(mac [6]byte) string {
	return fmt.Sprintf("%02X:%02X:%02X", mac[0], mac[1], mac[2])
}

// Format renders a MAC as six colon-separated hex byte pairs.
func Format(mac [6]byte) string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

// Lookup maps an OUI prefix to a vendor name. Linear scan is fine: the
// table is small and lookups happen once per accepted frame.
func Lookup(oui string) string {
	for _, e := range knownVendors {
		if e.oui == oui {
			return e.name
		}
	}
	return Unknown
}
