package controllers

import (
	"errors"

	"estatebackend/services"
	"estatebackend/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NegotiationControllerI interface {
	AnalyzeNegotiation(ctx *gin.Context)
}

type negotiationController struct {
	negotiation services.NegotiationServiceI
}

func NewNegotiationController(negotiation services.NegotiationServiceI) NegotiationControllerI {
	return &negotiationController{negotiation: negotiation}
}

func (c *negotiationController) AnalyzeNegotiation(ctx *gin.Context) {
	var input types.NegotiationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	strategy, err := c.negotiation.AnalyzeNegotiation(ctx.Request.Context(), input)
	if err != nil {
		var validationErr *types.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(400, gin.H{"error": validationErr.Error()})
			return
		}

		// A failed record write doesn't invalidate the computed strategy;
		// surface both and let the caller decide.
		var persistenceErr *types.PersistenceError
		if errors.As(err, &persistenceErr) && strategy != nil {
			zap.L().Warn("Negotiation strategy computed but not persisted", zap.Error(err))
			ctx.JSON(200, gin.H{
				"strategy": strategy,
				"warning":  "negotiation record was not persisted",
			})
			return
		}

		zap.L().Error("Error analyzing negotiation", zap.Error(err))
		ctx.JSON(500, gin.H{"error": "Error analyzing negotiation"})
		return
	}

	ctx.JSON(200, gin.H{"strategy": strategy})
}
