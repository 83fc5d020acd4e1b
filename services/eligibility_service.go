package services

import (
	"math"

	"estatebackend/config"
	"estatebackend/types"
	"estatebackend/utils/helpers"
)

const defaultTenureYears = 20

type EligibilityServiceI interface {
	CalculateLoanEligibility(profile types.FinancialProfile) (*types.LoanEligibilityResult, error)
}

type eligibilityService struct {
	policy config.LendingPolicy
	banks  config.BankDirectory
}

// NewEligibilityService builds the calculator around injected policy tables
// so regional/bank updates never touch the algorithm.
func NewEligibilityService(policy config.LendingPolicy, banks config.BankDirectory) EligibilityServiceI {
	return &eligibilityService{policy: policy, banks: banks}
}

func (s *eligibilityService) CalculateLoanEligibility(profile types.FinancialProfile) (*types.LoanEligibilityResult, error) {
	if profile.MonthlyIncome <= 0 {
		return nil, types.NewValidationError("monthly_income")
	}
	if profile.PropertyPrice <= 0 {
		return nil, types.NewValidationError("property_price")
	}
	band, ok := types.ParseCreditBand(profile.CibilScoreRange)
	if !ok {
		return nil, types.NewValidationError("cibil_score_range")
	}

	tenureYears := profile.PreferredTenureYears
	if tenureYears <= 0 {
		tenureYears = defaultTenureYears
	}
	tenureMonths := tenureYears * 12

	foir := s.policy.FOIRFor(band)
	eligibleEMI := profile.MonthlyIncome*foir - profile.ExistingLoansEMI
	if eligibleEMI < 0 {
		eligibleEMI = 0
	}

	interestRate := s.policy.RateFor(band)
	maxLoanByEMI := MaxPrincipal(eligibleEMI, interestRate, tenureMonths)
	maxLoanByLTV := profile.PropertyPrice * s.policy.LTVFor(profile.PropertyPrice)

	finalLoan := math.Min(maxLoanByEMI, maxLoanByLTV)
	requiredDownPayment := profile.PropertyPrice - finalLoan

	totalInterest := eligibleEMI*float64(tenureMonths) - finalLoan
	if totalInterest < 0 {
		totalInterest = 0
	}

	return &types.LoanEligibilityResult{
		EligibleLoanAmount:   helpers.RoundRupees(finalLoan),
		EligibleEMI:          helpers.RoundRupees(eligibleEMI),
		RequiredDownPayment:  helpers.RoundRupees(requiredDownPayment),
		ApprovalProbability:  approvalProbability(band, profile.ExistingLoansEMI, profile.MonthlyIncome),
		InterestRate:         interestRate,
		PreferredTenureYears: tenureYears,
		LTVPercentage:        helpers.Round2(helpers.SafePercent(finalLoan, profile.PropertyPrice)),
		FOIRPercentage:       helpers.Round2(foir * 100),
		TotalInterestPayable: helpers.RoundRupees(totalInterest),
		RecommendedBanks:     s.banks.ShortlistFor(profile.EmploymentType),
	}, nil
}

// approvalProbability is a heuristic score, clamped to [0, 95] so the engine
// never promises certainty.
func approvalProbability(band types.CreditBand, existingEMI, monthlyIncome float64) int {
	probability := 50

	switch band {
	case types.Band750Plus:
		probability += 30
	case types.Band650To749:
		probability += 15
	case types.Band550To649:
		probability -= 10
	default:
		probability -= 30
	}

	if existingEMI == 0 {
		probability += 10
	} else if existingEMI < monthlyIncome*0.2 {
		probability += 5
	}

	if monthlyIncome >= 100000 {
		probability += 10
	} else if monthlyIncome >= 50000 {
		probability += 5
	}

	return helpers.ClampInt(probability, 0, 95)
}
