package routes

import (
	"estatebackend/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(
	r *gin.Engine,
	calculators controllers.CalculatorControllerI,
	negotiation controllers.NegotiationControllerI,
	comparables controllers.ComparableControllerI,
) {
	v1 := r.Group("/api")

	{
		v1.POST("/calculateLoanEligibility", calculators.CalculateLoanEligibility)
		v1.POST("/calculateBudget", calculators.CalculateBudget)
		v1.POST("/calculateROI", calculators.CalculateROI)
		v1.POST("/analyzeNegotiation", negotiation.AnalyzeNegotiation)
		v1.POST("/uploadComparables", comparables.UploadComparables)
		v1.GET("/keepServerRunning", controllers.HealthController.IsRunning)
	}
}
