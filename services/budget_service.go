package services

import (
	"math"

	"estatebackend/config"
	"estatebackend/types"
	"estatebackend/utils/helpers"
)

type BudgetServiceI interface {
	CalculateBudget(profile types.FinancialProfile) (*types.BudgetResult, error)
}

type budgetService struct {
	policy config.BudgetPolicy
}

func NewBudgetService(policy config.BudgetPolicy) BudgetServiceI {
	return &budgetService{policy: policy}
}

func (s *budgetService) CalculateBudget(profile types.FinancialProfile) (*types.BudgetResult, error) {
	totalIncome := profile.MonthlyIncome + profile.SecondaryIncomeMonthly + profile.OtherIncomeMonthly
	if totalIncome <= 0 {
		return nil, types.NewValidationError("monthly_income")
	}

	disposableIncome := totalIncome - profile.MonthlyExpenses - profile.ExistingLoansEMI

	// Flat FOIR ceiling; the tiered lending table is a different policy and
	// the two are never merged.
	maxEMI := math.Min(disposableIncome*s.policy.FOIRCeiling, totalIncome*s.policy.FOIRCeiling)
	if maxEMI < 0 {
		maxEMI = 0
	}

	maxLoanAmount := MaxPrincipal(maxEMI, s.policy.AssumedInterestRate, s.policy.AssumedTenureYears*12)
	totalBudget := maxLoanAmount + profile.SavingsAvailable

	pricePerSqft := s.policy.PricePerSqft(profile.TargetCity)
	affordableAreaSqft := 0
	if pricePerSqft > 0 {
		affordableAreaSqft = int(math.Floor(totalBudget / pricePerSqft))
	}

	foirPercentage := helpers.SafePercent(maxEMI, totalIncome)
	downPaymentPercentage := helpers.SafePercent(profile.SavingsAvailable, totalBudget)

	return &types.BudgetResult{
		TotalIncome:           totalIncome,
		DisposableIncome:      disposableIncome,
		MaxEMI:                helpers.RoundRupees(maxEMI),
		MaxLoanAmount:         helpers.RoundRupees(maxLoanAmount),
		TotalBudget:           helpers.RoundRupees(totalBudget),
		AffordableAreaSqft:    affordableAreaSqft,
		RecommendedBHK:        recommendBHK(affordableAreaSqft),
		FOIRPercentage:        helpers.Round2(foirPercentage),
		DownPaymentPercentage: helpers.Round2(downPaymentPercentage),
		IsHealthyFOIR:         foirPercentage <= 40,
		HasGoodDownPayment:    downPaymentPercentage >= 20,
		AffordabilityScore:    affordabilityScore(foirPercentage, downPaymentPercentage, totalIncome),
	}, nil
}

func recommendBHK(affordableAreaSqft int) string {
	switch {
	case affordableAreaSqft >= 1800:
		return "3BHK"
	case affordableAreaSqft >= 1200:
		return "2BHK"
	case affordableAreaSqft >= 900:
		return "1.5BHK"
	default:
		return "1BHK"
	}
}

// affordabilityScore grades the plan 0-100 from FOIR, down-payment ratio and
// income level, base 50.
func affordabilityScore(foirPercentage, downPaymentPercentage, totalIncome float64) int {
	score := 50

	switch {
	case foirPercentage <= 30:
		score += 25
	case foirPercentage <= 40:
		score += 15
	case foirPercentage <= 50:
		score += 5
	default:
		score -= 10
	}

	switch {
	case downPaymentPercentage >= 30:
		score += 15
	case downPaymentPercentage >= 20:
		score += 10
	case downPaymentPercentage >= 10:
		score += 5
	default:
		score -= 5
	}

	switch {
	case totalIncome >= 150000:
		score += 10
	case totalIncome >= 100000:
		score += 5
	case totalIncome < 50000:
		score -= 10
	}

	return helpers.ClampInt(score, 0, 100)
}
