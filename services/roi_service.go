package services

import (
	"fmt"
	"math"

	"estatebackend/config"
	"estatebackend/types"
	"estatebackend/utils/helpers"
)

type ROIServiceI interface {
	CalculateROI(input types.PropertyPriceContext) (*types.ROIResult, error)
}

type roiService struct {
	defaults config.ROIDefaults
}

func NewROIService(defaults config.ROIDefaults) ROIServiceI {
	return &roiService{defaults: defaults}
}

func (s *roiService) CalculateROI(input types.PropertyPriceContext) (*types.ROIResult, error) {
	if input.PropertyPrice <= 0 {
		return nil, types.NewValidationError("property_price")
	}
	if input.DownPaymentPercentage <= 0 {
		return nil, types.NewValidationError("down_payment_percentage")
	}
	if input.ExpectedRentalIncome <= 0 {
		return nil, types.NewValidationError("expected_rental_income")
	}

	interestRate := input.InterestRate
	if interestRate <= 0 {
		interestRate = s.defaults.InterestRate
	}
	tenureYears := input.LoanTenureYears
	if tenureYears <= 0 {
		tenureYears = s.defaults.TenureYears
	}
	appreciationRate := input.PropertyAppreciationRate
	if appreciationRate <= 0 {
		appreciationRate = s.defaults.AppreciationRate
	}
	horizons := input.CalculateYears
	if len(horizons) == 0 {
		horizons = s.defaults.HorizonYears
	}

	downPaymentAmount := input.PropertyPrice * input.DownPaymentPercentage / 100
	loanAmount := input.LoanAmount
	if loanAmount <= 0 {
		loanAmount = input.PropertyPrice - downPaymentAmount
	}

	tenureMonths := tenureYears * 12
	monthlyEMI := EMI(loanAmount, interestRate, tenureMonths)
	annualRentalIncome := input.ExpectedRentalIncome * 12

	// Deduction caps are per financial year; the accrual is the capped annual
	// figure times the horizon, not a year-by-year schedule.
	annualPrincipalRepayment := loanAmount / float64(tenureYears)
	annualInterest := loanAmount * interestRate / 100

	projections := make(map[string]types.HorizonProjection, len(horizons))
	for _, years := range horizons {
		if years <= 0 {
			continue
		}

		propertyValue := input.PropertyPrice * math.Pow(1+appreciationRate/100, float64(years))
		capitalGain := propertyValue - input.PropertyPrice
		totalRentalIncome := annualRentalIncome * float64(years)

		split := SplitAmortization(loanAmount, interestRate, tenureMonths, years*12)

		taxBenefits := math.Min(annualPrincipalRepayment, s.defaults.PrincipalDeductionCap)*float64(years) +
			math.Min(annualInterest, s.defaults.InterestDeductionCap)*float64(years)

		netProfit := capitalGain + totalRentalIncome + taxBenefits - split.InterestPaid - downPaymentAmount
		totalROI := helpers.SafePercent(netProfit, downPaymentAmount)

		projections[fmt.Sprintf("years_%d", years)] = types.HorizonProjection{
			PropertyValue:      helpers.RoundRupees(propertyValue),
			CapitalGain:        helpers.RoundRupees(capitalGain),
			TotalRentalIncome:  helpers.RoundRupees(totalRentalIncome),
			InterestPaid:       helpers.RoundRupees(split.InterestPaid),
			TaxBenefits:        helpers.RoundRupees(taxBenefits),
			NetProfit:          helpers.RoundRupees(netProfit),
			TotalROIPercentage: helpers.Round2(totalROI),
			AnnualizedROI:      helpers.Round2(totalROI / float64(years)),
		}
	}

	return &types.ROIResult{
		PropertyPrice:            input.PropertyPrice,
		DownPaymentAmount:        helpers.RoundRupees(downPaymentAmount),
		DownPaymentPercentage:    input.DownPaymentPercentage,
		LoanAmount:               helpers.RoundRupees(loanAmount),
		InterestRate:             interestRate,
		LoanTenureYears:          tenureYears,
		MonthlyEMI:               helpers.RoundRupees(monthlyEMI),
		ExpectedRentalIncome:     input.ExpectedRentalIncome,
		AnnualRentalIncome:       annualRentalIncome,
		RentalYieldPercentage:    helpers.Round2(helpers.SafePercent(annualRentalIncome, input.PropertyPrice)),
		PropertyAppreciationRate: appreciationRate,
		Projections:              projections,
	}, nil
}
