package config

import (
	"fmt"
	"os"

	"estatebackend/types"

	"gopkg.in/yaml.v2"
)

// LTVSlab caps the loan at Ratio of the property price for prices up to UpTo.
// A zero UpTo marks the open-ended top slab.
type LTVSlab struct {
	UpTo  float64 `yaml:"up_to"`
	Ratio float64 `yaml:"ratio"`
}

// LendingPolicy holds the bank-side tables the eligibility calculator runs
// on. The values are regional policy, not math, so they live here where they
// can be versioned and overridden per deployment.
type LendingPolicy struct {
	FOIRByBand map[types.CreditBand]float64
	RateByBand map[types.CreditBand]float64
	LTVSlabs   []LTVSlab
}

func (p LendingPolicy) FOIRFor(band types.CreditBand) float64 {
	return p.FOIRByBand[band]
}

func (p LendingPolicy) RateFor(band types.CreditBand) float64 {
	return p.RateByBand[band]
}

// LTVFor returns the loan-to-value ceiling for a property price.
func (p LendingPolicy) LTVFor(price float64) float64 {
	for _, slab := range p.LTVSlabs {
		if slab.UpTo > 0 && price <= slab.UpTo {
			return slab.Ratio
		}
	}
	if n := len(p.LTVSlabs); n > 0 {
		return p.LTVSlabs[n-1].Ratio
	}
	return 0
}

// BudgetPolicy drives the affordability planner. Its flat FOIR ceiling is a
// separate policy from the tiered lending table and must stay separate.
type BudgetPolicy struct {
	FOIRCeiling          float64            `yaml:"foir_ceiling"`
	AssumedInterestRate  float64            `yaml:"assumed_interest_rate"`
	AssumedTenureYears   int                `yaml:"assumed_tenure_years"`
	CityPricePerSqft     map[string]float64 `yaml:"city_price_per_sqft"`
	FallbackPricePerSqft float64            `yaml:"fallback_price_per_sqft"`
}

func (p BudgetPolicy) PricePerSqft(city string) float64 {
	if price, ok := p.CityPricePerSqft[city]; ok {
		return price
	}
	return p.FallbackPricePerSqft
}

// ROIDefaults fill in the optional fields of a projection request.
type ROIDefaults struct {
	InterestRate          float64 `yaml:"interest_rate"`
	TenureYears           int     `yaml:"tenure_years"`
	AppreciationRate      float64 `yaml:"appreciation_rate"`
	HorizonYears          []int   `yaml:"horizon_years"`
	PrincipalDeductionCap float64 `yaml:"principal_deduction_cap"`
	InterestDeductionCap  float64 `yaml:"interest_deduction_cap"`
}

// NegotiationPolicy holds the price-gap thresholds and market-position
// factors of the strategy engine.
type NegotiationPolicy struct {
	SmallGapPercent         float64 `yaml:"small_gap_percent"`
	MidGapPercent           float64 `yaml:"mid_gap_percent"`
	OverpricedMarketFactor  float64 `yaml:"overpriced_market_factor"`
	FallbackMarketMinFactor float64 `yaml:"fallback_market_min_factor"`
	FallbackMarketMaxFactor float64 `yaml:"fallback_market_max_factor"`
}

// BankDirectory maps an employment category to its lender shortlist.
type BankDirectory map[string][]types.BankOffer

// ShortlistFor falls back to the salaried shortlist for unknown categories.
func (d BankDirectory) ShortlistFor(employmentType string) []types.BankOffer {
	if offers, ok := d[employmentType]; ok {
		return offers
	}
	return d["salaried"]
}

type Policy struct {
	Lending     LendingPolicy
	Budget      BudgetPolicy
	ROI         ROIDefaults
	Negotiation NegotiationPolicy
	Banks       BankDirectory
}

// Default returns the compiled-in Tamil Nadu policy tables.
func Default() Policy {
	return Policy{
		Lending: LendingPolicy{
			FOIRByBand: map[types.CreditBand]float64{
				types.BandBelow550: 0.30,
				types.Band550To649: 0.40,
				types.Band650To749: 0.50,
				types.Band750Plus:  0.60,
			},
			RateByBand: map[types.CreditBand]float64{
				types.BandBelow550: 10.5,
				types.Band550To649: 9.5,
				types.Band650To749: 8.8,
				types.Band750Plus:  8.4,
			},
			LTVSlabs: []LTVSlab{
				{UpTo: 3000000, Ratio: 0.90},
				{UpTo: 7500000, Ratio: 0.80},
				{UpTo: 0, Ratio: 0.75},
			},
		},
		Budget: BudgetPolicy{
			FOIRCeiling:         0.50,
			AssumedInterestRate: 8.5,
			AssumedTenureYears:  20,
			CityPricePerSqft: map[string]float64{
				"Chennai":     7500,
				"Coimbatore":  5000,
				"Madurai":     3800,
				"Trichy":      3500,
				"Salem":       3200,
				"Tirunelveli": 3000,
			},
			FallbackPricePerSqft: 5000,
		},
		ROI: ROIDefaults{
			InterestRate:          8.5,
			TenureYears:           20,
			AppreciationRate:      8,
			HorizonYears:          []int{5, 10, 15},
			PrincipalDeductionCap: 150000,
			InterestDeductionCap:  200000,
		},
		Negotiation: NegotiationPolicy{
			SmallGapPercent:         5,
			MidGapPercent:           10,
			OverpricedMarketFactor:  1.10,
			FallbackMarketMinFactor: 0.90,
			FallbackMarketMaxFactor: 1.10,
		},
		Banks: BankDirectory{
			"salaried": {
				{BankName: "SBI", InterestRate: 8.4, ProcessingFeePercent: 0.35, EligibilityScore: 95, ApprovalTimeDays: 15, RecommendationReason: "Best rates, quick approval for salaried"},
				{BankName: "HDFC", InterestRate: 8.5, ProcessingFeePercent: 0.40, EligibilityScore: 90, ApprovalTimeDays: 12, RecommendationReason: "Fast processing, flexible terms"},
				{BankName: "Indian Bank", InterestRate: 8.3, ProcessingFeePercent: 0.30, EligibilityScore: 88, ApprovalTimeDays: 18, RecommendationReason: "Lowest rates, government bank security"},
				{BankName: "ICICI", InterestRate: 8.6, ProcessingFeePercent: 0.45, EligibilityScore: 85, ApprovalTimeDays: 10, RecommendationReason: "Quickest approval, digital process"},
			},
			"self_employed": {
				{BankName: "HDFC", InterestRate: 8.5, ProcessingFeePercent: 0.40, EligibilityScore: 92, ApprovalTimeDays: 12, RecommendationReason: "Flexible income documentation for self-employed"},
				{BankName: "ICICI", InterestRate: 8.6, ProcessingFeePercent: 0.45, EligibilityScore: 88, ApprovalTimeDays: 10, RecommendationReason: "Quickest approval, digital process"},
				{BankName: "SBI", InterestRate: 8.4, ProcessingFeePercent: 0.35, EligibilityScore: 85, ApprovalTimeDays: 18, RecommendationReason: "Best rates once income proof is established"},
				{BankName: "Indian Bank", InterestRate: 8.3, ProcessingFeePercent: 0.30, EligibilityScore: 82, ApprovalTimeDays: 20, RecommendationReason: "Lowest rates, government bank security"},
			},
		},
	}
}

// policyFile is the YAML override shape. Only the keys present in the file
// replace defaults; credit bands are keyed by their range strings.
type policyFile struct {
	FOIRByBand  map[string]float64 `yaml:"foir_by_band"`
	RateByBand  map[string]float64 `yaml:"rate_by_band"`
	LTVSlabs    []LTVSlab          `yaml:"ltv_slabs"`
	Budget      *BudgetPolicy      `yaml:"budget"`
	ROI         *ROIDefaults       `yaml:"roi"`
	Negotiation *NegotiationPolicy `yaml:"negotiation"`
}

// Load reads YAML overrides on top of the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Policy, error) {
	policy := Default()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("error reading policy file: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return policy, fmt.Errorf("error parsing policy file: %w", err)
	}

	for bandName, foir := range file.FOIRByBand {
		band, ok := types.ParseCreditBand(bandName)
		if !ok {
			return policy, fmt.Errorf("unknown credit band %q in policy file", bandName)
		}
		policy.Lending.FOIRByBand[band] = foir
	}
	for bandName, rate := range file.RateByBand {
		band, ok := types.ParseCreditBand(bandName)
		if !ok {
			return policy, fmt.Errorf("unknown credit band %q in policy file", bandName)
		}
		policy.Lending.RateByBand[band] = rate
	}
	if len(file.LTVSlabs) > 0 {
		policy.Lending.LTVSlabs = file.LTVSlabs
	}
	if file.Budget != nil {
		policy.Budget = *file.Budget
		if policy.Budget.FallbackPricePerSqft == 0 {
			policy.Budget.FallbackPricePerSqft = Default().Budget.FallbackPricePerSqft
		}
	}
	if file.ROI != nil {
		policy.ROI = *file.ROI
	}
	if file.Negotiation != nil {
		policy.Negotiation = *file.Negotiation
	}
	return policy, nil
}
