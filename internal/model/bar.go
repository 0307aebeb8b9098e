package model

import "time"

// Bar represents a single daily OHLCV price observation.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Range returns the bar's high-low spread.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// IBS returns the internal bar strength: where the close sits within the
// bar's range (0.0 = at the low, 1.0 = at the high). A zero-range bar
// reports the neutral 0.5.
func (b Bar) IBS() float64 {
	r := b.High - b.Low
	if r == 0 {
		return 0.5
	}
	return (b.Close - b.Low) / r
}
