package ids

// Amount is a signed tinybar quantity. Conversions to/from display units
// (e.g. hbar = 1e8 tinybar) happen only at the boundary; all internal math
// stays in tinybars to avoid floating-point drift.
type Amount int64

// TinybarsPerDisplayUnit is the Ledger's fixed-point scale between the
// wire/internal unit (tinybar) and the display unit (hbar).
const TinybarsPerDisplayUnit = 100_000_000

// DisplayUnits converts tinybars to a floating-point display-unit value.
// Intended for presentation only; never feed the result back into math
// that must stay exact.
func (a Amount) DisplayUnits() float64 {
	return float64(a) / float64(TinybarsPerDisplayUnit)
}

// FromDisplayUnits converts a display-unit amount to tinybars, rounding to
// the nearest tinybar.
func FromDisplayUnits(units float64) Amount {
	return Amount(units*float64(TinybarsPerDisplayUnit) + sign(units)*0.5)
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
