package types

// CreditBand is an ordered credit-risk tier. A larger value always means a
// stronger borrower, so policy monotonicity can be checked with plain
// comparisons instead of string parsing.
type CreditBand int

const (
	BandBelow550 CreditBand = iota
	Band550To649
	Band650To749
	Band750Plus
)

func (b CreditBand) String() string {
	switch b {
	case Band750Plus:
		return "750+"
	case Band650To749:
		return "650-749"
	case Band550To649:
		return "550-649"
	default:
		return "below_550"
	}
}

// ParseCreditBand maps the score-range strings used by lead forms onto a
// band. The second return value is false for anything unrecognised.
func ParseCreditBand(s string) (CreditBand, bool) {
	switch s {
	case "750+":
		return Band750Plus, true
	case "650-749":
		return Band650To749, true
	case "550-649":
		return Band550To649, true
	case "below_550":
		return BandBelow550, true
	}
	return BandBelow550, false
}

// CreditBandFromScore buckets a raw CIBIL score into its band.
func CreditBandFromScore(score int) CreditBand {
	switch {
	case score >= 750:
		return Band750Plus
	case score >= 650:
		return Band650To749
	case score >= 550:
		return Band550To649
	default:
		return BandBelow550
	}
}

// AllCreditBands lists the bands weakest first.
func AllCreditBands() []CreditBand {
	return []CreditBand{BandBelow550, Band550To649, Band650To749, Band750Plus}
}
