package capture

// 2.4GHz band metadata attached to every record's radio section.
const (
	band24GHz        = "2.4GHz"
	bandwidthMHz     = 20
	channel14FreqMHz = 2484
)

// ChannelFreq maps a 2.4GHz channel number to its center frequency in MHz.
// Channels 1..13 are 5MHz apart from 2412; channel 14 sits alone.
func ChannelFreq(ch uint8) uint16 {
	if ch == 14 {
		return channel14FreqMHz
	}
	if ch < 1 || ch > 13 {
		return 0
	}
	return 2407 + 5*uint16(ch)
}

// FreqToChannel is the inverse mapping, for drivers that report frequency
// instead of channel number. Returns 0 for frequencies outside the band.
func FreqToChannel(freqMHz int) uint8 {
	if freqMHz == channel14FreqMHz {
		return 14
	}
	if freqMHz < 2412 || freqMHz > 2472 || (freqMHz-2407)%5 != 0 {
		return 0
	}
	return uint8((freqMHz - 2407) / 5)
}
