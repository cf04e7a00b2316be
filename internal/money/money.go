package money

import "fmt"

// Pesewas is a monetary amount in Ghanaian minor units (1 GHS = 100 pesewas).
// All amounts in the engine are integer pesewas; floats never touch money.
type Pesewas int64

// Bps is a rate in basis points (1% = 100 bps).
type Bps int

const BpsDenominator = 10000

// Cedis converts whole cedis to pesewas.
func Cedis(c int64) Pesewas {
	return Pesewas(c * 100)
}

// Commission applies rate to gross and rounds half-up to the nearest pesewa.
func Commission(gross Pesewas, rate Bps) Pesewas {
	if gross <= 0 || rate <= 0 {
		return 0
	}
	return Pesewas((int64(gross)*int64(rate) + BpsDenominator/2) / BpsDenominator)
}

// Split returns (commission, payout) for a gross amount. The payout is always
// gross - commission, never rounded on its own, so commission + payout == gross
// holds exactly.
func Split(gross Pesewas, rate Bps) (commission, payout Pesewas) {
	commission = Commission(gross, rate)
	return commission, gross - commission
}

// String formats an amount as "GHS 132.00".
func (p Pesewas) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sGHS %d.%02d", sign, v/100, v%100)
}
