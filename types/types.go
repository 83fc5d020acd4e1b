package types

import "time"

// FinancialProfile carries the raw financial inputs of a buyer-facing request.
// It has no persistent identity; each request owns its own copy.
type FinancialProfile struct {
	MonthlyIncome          float64 `json:"monthly_income"`
	SecondaryIncomeMonthly float64 `json:"secondary_income_monthly"`
	OtherIncomeMonthly     float64 `json:"other_income_monthly"`
	MonthlyExpenses        float64 `json:"monthly_expenses"`
	ExistingLoansEMI       float64 `json:"existing_loans_emi"`
	SavingsAvailable       float64 `json:"savings_available"`
	CibilScoreRange        string  `json:"cibil_score_range"`
	EmploymentType         string  `json:"employment_type"`
	HouseholdType          string  `json:"household_type"`
	PropertyPrice          float64 `json:"property_price"`
	PreferredTenureYears   int     `json:"preferred_tenure_years"`
	TargetCity             string  `json:"target_city"`
}

// LoanTerms is always derived; the installment comes out of the amortizing
// formula, callers never set it directly.
type LoanTerms struct {
	Principal          float64 `json:"principal"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	TenureMonths       int     `json:"tenure_months"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

type BankOffer struct {
	BankName             string  `json:"bank_name"`
	InterestRate         float64 `json:"interest_rate"`
	ProcessingFeePercent float64 `json:"processing_fee"`
	EligibilityScore     int     `json:"eligibility_score"`
	ApprovalTimeDays     int     `json:"approval_time_days"`
	RecommendationReason string  `json:"recommendation_reason"`
}

type LoanEligibilityResult struct {
	EligibleLoanAmount   float64     `json:"eligible_loan_amount"`
	EligibleEMI          float64     `json:"eligible_emi"`
	RequiredDownPayment  float64     `json:"required_down_payment"`
	ApprovalProbability  int         `json:"approval_probability"`
	InterestRate         float64     `json:"interest_rate"`
	PreferredTenureYears int         `json:"preferred_tenure_years"`
	LTVPercentage        float64     `json:"ltv_percentage"`
	FOIRPercentage       float64     `json:"foir_percentage"`
	TotalInterestPayable float64     `json:"total_interest_payable"`
	RecommendedBanks     []BankOffer `json:"recommended_banks"`
}

type BudgetResult struct {
	TotalIncome           float64 `json:"total_income"`
	DisposableIncome      float64 `json:"disposable_income"`
	MaxEMI                float64 `json:"max_emi"`
	MaxLoanAmount         float64 `json:"max_loan_amount"`
	TotalBudget           float64 `json:"total_budget"`
	AffordableAreaSqft    int     `json:"affordable_area_sqft"`
	RecommendedBHK        string  `json:"recommended_bhk"`
	FOIRPercentage        float64 `json:"foir_percentage"`
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	IsHealthyFOIR         bool    `json:"is_healthy_foir"`
	HasGoodDownPayment    bool    `json:"has_good_down_payment"`
	AffordabilityScore    int     `json:"affordability_score"`
}

// PropertyPriceContext is the input to the ROI projector. LoanAmount is
// optional; when zero it is derived from price and down-payment percentage.
type PropertyPriceContext struct {
	PropertyPrice            float64 `json:"property_price"`
	DownPaymentPercentage    float64 `json:"down_payment_percentage"`
	LoanAmount               float64 `json:"loan_amount"`
	InterestRate             float64 `json:"interest_rate"`
	LoanTenureYears          int     `json:"loan_tenure_years"`
	ExpectedRentalIncome     float64 `json:"expected_rental_income"`
	PropertyAppreciationRate float64 `json:"property_appreciation_rate"`
	CalculateYears           []int   `json:"calculate_years"`
}

type HorizonProjection struct {
	PropertyValue      float64 `json:"property_value"`
	CapitalGain        float64 `json:"capital_gain"`
	TotalRentalIncome  float64 `json:"total_rental_income"`
	InterestPaid       float64 `json:"interest_paid"`
	TaxBenefits        float64 `json:"tax_benefits"`
	NetProfit          float64 `json:"net_profit"`
	TotalROIPercentage float64 `json:"total_roi_percentage"`
	AnnualizedROI      float64 `json:"annualized_roi"`
}

type ROIResult struct {
	PropertyPrice            float64                      `json:"property_price"`
	DownPaymentAmount        float64                      `json:"down_payment_amount"`
	DownPaymentPercentage    float64                      `json:"down_payment_percentage"`
	LoanAmount               float64                      `json:"loan_amount"`
	InterestRate             float64                      `json:"interest_rate"`
	LoanTenureYears          int                          `json:"loan_tenure_years"`
	MonthlyEMI               float64                      `json:"monthly_emi"`
	ExpectedRentalIncome     float64                      `json:"expected_rental_income"`
	AnnualRentalIncome       float64                      `json:"annual_rental_income"`
	RentalYieldPercentage    float64                      `json:"rental_yield_percentage"`
	PropertyAppreciationRate float64                      `json:"property_appreciation_rate"`
	Projections              map[string]HorizonProjection `json:"projections"`
}

// Payment capacity labels a lead can carry. Anything else is treated as
// financing still pending.
const (
	PaymentCapacityPreApproved      = "pre_approved"
	PaymentCapacityCashReady        = "cash_ready"
	PaymentCapacityFinancingPending = "financing_pending"
)

type NegotiationInput struct {
	PropertyID        string    `json:"property_id"`
	LeadID            string    `json:"lead_id"`
	ListedPrice       float64   `json:"listed_price"`
	BuyerBudgetMin    float64   `json:"buyer_budget_min"`
	BuyerBudgetMax    float64   `json:"buyer_budget_max"`
	PaymentCapacity   string    `json:"payment_capacity"`
	MarketComparables []float64 `json:"market_comparables"`
}

// Strategy labels emitted by the negotiation engine.
const (
	StrategyHoldPrice         = "hold_price"
	StrategySmallDiscount     = "small_discount"
	StrategyNegotiateMiddle   = "negotiate_middle"
	StrategyHoldOrAlternative = "hold_or_alternative"
	StrategyQuickClose        = "quick_close_discount"
)

type NegotiationStrategy struct {
	SuggestedPrice    float64 `json:"suggestedPrice"`
	SuggestedDiscount float64 `json:"suggestedDiscount"`
	Strategy          string  `json:"strategy"`
	Reasoning         string  `json:"reasoning"`
	ExpectedOutcome   string  `json:"expectedOutcome"`
	RecordID          string  `json:"record_id,omitempty"`
}

type MarketSummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Lifecycle statuses of a negotiation record. The engine only ever writes
// `initiated`; later transitions belong to downstream workflow code.
const (
	NegotiationStatusInitiated = "initiated"
	NegotiationStatusCountered = "countered"
	NegotiationStatusAccepted  = "accepted"
	NegotiationStatusRejected  = "rejected"
	NegotiationStatusExpired   = "expired"
)

type NegotiationRecord struct {
	ID                  string    `bson:"_id" json:"id"`
	PropertyID          string    `bson:"property_id,omitempty" json:"property_id,omitempty"`
	LeadID              string    `bson:"lead_id,omitempty" json:"lead_id,omitempty"`
	ListedPrice         float64   `bson:"listed_price" json:"listed_price"`
	BuyerBudgetMin      float64   `bson:"buyer_budget_min" json:"buyer_budget_min"`
	BuyerBudgetMax      float64   `bson:"buyer_budget_max" json:"buyer_budget_max"`
	SuggestedPrice      float64   `bson:"suggested_price" json:"suggested_price"`
	SuggestedStrategy   string    `bson:"suggested_strategy" json:"suggested_strategy"`
	StrategyReasoning   string    `bson:"strategy_reasoning" json:"strategy_reasoning"`
	MarketComparableMin float64   `bson:"market_comparable_min" json:"market_comparable_min"`
	MarketComparableMax float64   `bson:"market_comparable_max" json:"market_comparable_max"`
	MarketComparableAvg float64   `bson:"market_comparable_avg" json:"market_comparable_avg"`
	Status              string    `bson:"status" json:"status"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
}

// NegotiationEvent is what downstream workflow consumers receive once a
// negotiation record has been persisted.
type NegotiationEvent struct {
	RecordID       string  `json:"record_id"`
	PropertyID     string  `json:"property_id,omitempty"`
	LeadID         string  `json:"lead_id,omitempty"`
	Strategy       string  `json:"strategy"`
	SuggestedPrice float64 `json:"suggested_price"`
	Status         string  `json:"status"`
}
