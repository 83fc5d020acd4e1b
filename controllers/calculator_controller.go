package controllers

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"

	"estatebackend/repository"
	"estatebackend/services"
	"estatebackend/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CalculatorControllerI interface {
	CalculateLoanEligibility(ctx *gin.Context)
	CalculateBudget(ctx *gin.Context)
	CalculateROI(ctx *gin.Context)
}

type calculatorController struct {
	eligibility services.EligibilityServiceI
	budget      services.BudgetServiceI
	roi         services.ROIServiceI
	cache       repository.CacheRepository
}

func NewCalculatorController(
	eligibility services.EligibilityServiceI,
	budget services.BudgetServiceI,
	roi services.ROIServiceI,
	cache repository.CacheRepository,
) CalculatorControllerI {
	return &calculatorController{
		eligibility: eligibility,
		budget:      budget,
		roi:         roi,
		cache:       cache,
	}
}

func (c *calculatorController) CalculateLoanEligibility(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Error reading request body"})
		return
	}
	if c.serveCached(ctx, "calc:eligibility:", body) {
		return
	}

	var profile types.FinancialProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := c.eligibility.CalculateLoanEligibility(profile)
	if err != nil {
		respondCalculatorError(ctx, err)
		return
	}
	c.respondAndCache(ctx, "calc:eligibility:", body, result)
}

func (c *calculatorController) CalculateBudget(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Error reading request body"})
		return
	}
	if c.serveCached(ctx, "calc:budget:", body) {
		return
	}

	var profile types.FinancialProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := c.budget.CalculateBudget(profile)
	if err != nil {
		respondCalculatorError(ctx, err)
		return
	}
	c.respondAndCache(ctx, "calc:budget:", body, result)
}

func (c *calculatorController) CalculateROI(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Error reading request body"})
		return
	}
	if c.serveCached(ctx, "calc:roi:", body) {
		return
	}

	var input types.PropertyPriceContext
	if err := json.Unmarshal(body, &input); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := c.roi.CalculateROI(input)
	if err != nil {
		respondCalculatorError(ctx, err)
		return
	}
	c.respondAndCache(ctx, "calc:roi:", body, result)
}

// serveCached replays a previously computed response for an identical
// payload. The calculators are pure, so the digest of the body is enough.
func (c *calculatorController) serveCached(ctx *gin.Context, prefix string, body []byte) bool {
	cached, ok := c.cache.Get(cacheKey(prefix, body))
	if !ok {
		return false
	}
	ctx.Data(200, "application/json", []byte(cached))
	return true
}

func (c *calculatorController) respondAndCache(ctx *gin.Context, prefix string, body []byte, result interface{}) {
	payload, err := json.Marshal(result)
	if err != nil {
		zap.L().Error("Error marshalling calculator result", zap.Error(err))
		ctx.JSON(500, gin.H{"error": "Error encoding result"})
		return
	}
	if err := c.cache.Set(cacheKey(prefix, body), string(payload)); err != nil {
		zap.L().Error("Error caching calculator result", zap.Error(err))
	}
	ctx.Data(200, "application/json", payload)
}

func cacheKey(prefix string, body []byte) string {
	digest := sha1.Sum(body)
	return prefix + hex.EncodeToString(digest[:])
}

func respondCalculatorError(ctx *gin.Context, err error) {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(400, gin.H{"error": validationErr.Error()})
		return
	}
	zap.L().Error("Calculator error", zap.Error(err))
	ctx.JSON(500, gin.H{"error": "Internal server error"})
}
