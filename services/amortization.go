package services

import "math"

// EMI returns the fixed monthly installment for an amortizing loan using
// P*r*(1+r)^n / ((1+r)^n - 1). A zero rate degenerates to straight-line P/n.
func EMI(principal, annualRatePercent float64, tenureMonths int) float64 {
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}
	n := float64(tenureMonths)
	monthlyRate := annualRatePercent / 12 / 100
	if monthlyRate == 0 {
		return principal / n
	}
	pow := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * pow / (pow - 1)
}

// MaxPrincipal inverts EMI: the largest principal a given installment can
// service over the tenure.
func MaxPrincipal(maxInstallment, annualRatePercent float64, tenureMonths int) float64 {
	if maxInstallment <= 0 || tenureMonths <= 0 {
		return 0
	}
	n := float64(tenureMonths)
	monthlyRate := annualRatePercent / 12 / 100
	if monthlyRate == 0 {
		return maxInstallment * n
	}
	pow := math.Pow(1+monthlyRate, n)
	return maxInstallment * (pow - 1) / (monthlyRate * pow)
}

type AmortizationSplit struct {
	PrincipalPaid float64
	InterestPaid  float64
}

// SplitAmortization approximates the principal/interest split after
// elapsedMonths of a loan. Principal is prorated straight-line over the
// tenure rather than from a real schedule; downstream ROI and tax-benefit
// figures are calibrated to this approximation, so keep it.
func SplitAmortization(principal, annualRatePercent float64, tenureMonths, elapsedMonths int) AmortizationSplit {
	if principal <= 0 || tenureMonths <= 0 || elapsedMonths <= 0 {
		return AmortizationSplit{}
	}
	if elapsedMonths > tenureMonths {
		elapsedMonths = tenureMonths
	}

	installment := EMI(principal, annualRatePercent, tenureMonths)
	totalPaid := installment * float64(elapsedMonths)
	principalPaid := principal * (float64(elapsedMonths) / float64(tenureMonths))
	interestPaid := totalPaid - principalPaid
	if interestPaid < 0 {
		interestPaid = 0
	}
	return AmortizationSplit{PrincipalPaid: principalPaid, InterestPaid: interestPaid}
}
