package services

import (
	"context"
	"fmt"
	"time"

	"estatebackend/config"
	"estatebackend/repository"
	"estatebackend/types"
	"estatebackend/utils/helpers"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NegotiationServiceI interface {
	AnalyzeNegotiation(ctx context.Context, input types.NegotiationInput) (*types.NegotiationStrategy, error)
}

type negotiationService struct {
	policy config.NegotiationPolicy
	repo   repository.NegotiationRepository
	events repository.EventPublisher
}

// NewNegotiationService keeps the decision procedure pure; the injected
// repository receives the single insert, the publisher the resulting event.
func NewNegotiationService(policy config.NegotiationPolicy, repo repository.NegotiationRepository, events repository.EventPublisher) NegotiationServiceI {
	return &negotiationService{policy: policy, repo: repo, events: events}
}

// AnalyzeNegotiation picks a price strategy for one negotiation attempt and
// persists the record with status `initiated`. When only the persistence
// write fails, the computed strategy is still returned next to a
// PersistenceError so callers can decide whether to surface it.
func (s *negotiationService) AnalyzeNegotiation(ctx context.Context, input types.NegotiationInput) (*types.NegotiationStrategy, error) {
	span := sentry.StartSpan(ctx, "[SERVICE] AnalyzeNegotiation")
	defer span.Finish()

	if input.ListedPrice <= 0 {
		return nil, types.NewValidationError("listed_price")
	}
	if input.BuyerBudgetMax <= 0 {
		return nil, types.NewValidationError("buyer_budget_max")
	}

	listedPrice := input.ListedPrice
	market := SummarizeComparables(input.MarketComparables, listedPrice, s.policy)

	suggestedPrice := listedPrice
	suggestedDiscount := 0.0
	strategy := types.StrategyHoldPrice
	var reasoning, expectedOutcome string

	switch {
	// Buyer cannot afford the property as listed.
	case input.BuyerBudgetMax < listedPrice:
		gapPercent := (listedPrice - input.BuyerBudgetMax) / listedPrice * 100
		switch {
		case gapPercent <= s.policy.SmallGapPercent:
			suggestedPrice = input.BuyerBudgetMax
			suggestedDiscount = gapPercent
			strategy = types.StrategySmallDiscount
			reasoning = fmt.Sprintf("Buyer budget (₹%s) is only %.1f%% below listed price. Small discount will close the deal.",
				helpers.FormatINR(input.BuyerBudgetMax), gapPercent)
			expectedOutcome = "High probability of acceptance"
		case gapPercent <= s.policy.MidGapPercent:
			suggestedPrice = (listedPrice + input.BuyerBudgetMax) / 2
			suggestedDiscount = (listedPrice - suggestedPrice) / listedPrice * 100
			strategy = types.StrategyNegotiateMiddle
			reasoning = fmt.Sprintf("Buyer budget gap is %.1f%%. Suggest middle ground to maintain value while closing deal.", gapPercent)
			expectedOutcome = "Moderate probability, may need counter-offer"
		default:
			strategy = types.StrategyHoldOrAlternative
			reasoning = fmt.Sprintf("Buyer budget gap is %.1f%% - too large. Consider alternative property or hold price.", gapPercent)
			expectedOutcome = "Low probability, suggest alternative property"
		}

	// Buyer budget matches or exceeds the listed price.
	case input.BuyerBudgetMin >= listedPrice:
		reasoning = "Buyer budget matches or exceeds listed price. Hold firm on price."
		expectedOutcome = "High probability buyer will accept listed price"

	// Listed price sits inside the buyer's range.
	default:
		if input.PaymentCapacity == types.PaymentCapacityPreApproved || input.PaymentCapacity == types.PaymentCapacityCashReady {
			reasoning = "Buyer has strong payment capacity. Hold price, emphasize value."
			expectedOutcome = "High probability of acceptance at listed price"
		} else {
			suggestedPrice = (input.BuyerBudgetMin + input.BuyerBudgetMax) / 2
			suggestedDiscount = (listedPrice - suggestedPrice) / listedPrice * 100
			strategy = types.StrategyQuickClose
			reasoning = "Buyer budget overlaps. Small discount can secure quick close."
			expectedOutcome = "High probability with discount"
		}
	}

	// Market position overlay; only re-prices branches that held the listed
	// price unchanged.
	if listedPrice > market.Avg*s.policy.OverpricedMarketFactor {
		reasoning += " Property is priced above market average. Consider discount for competitiveness."
		if suggestedPrice == listedPrice {
			suggestedPrice = market.Avg
			suggestedDiscount = (listedPrice - suggestedPrice) / listedPrice * 100
		}
	}
	if suggestedDiscount < 0 {
		suggestedDiscount = 0
	}

	result := &types.NegotiationStrategy{
		SuggestedPrice:    suggestedPrice,
		SuggestedDiscount: helpers.Round1(suggestedDiscount),
		Strategy:          strategy,
		Reasoning:         reasoning,
		ExpectedOutcome:   expectedOutcome,
	}

	record := types.NegotiationRecord{
		ID:                  uuid.New().String(),
		PropertyID:          input.PropertyID,
		LeadID:              input.LeadID,
		ListedPrice:         listedPrice,
		BuyerBudgetMin:      input.BuyerBudgetMin,
		BuyerBudgetMax:      input.BuyerBudgetMax,
		SuggestedPrice:      suggestedPrice,
		SuggestedStrategy:   strategy,
		StrategyReasoning:   reasoning,
		MarketComparableMin: market.Min,
		MarketComparableMax: market.Max,
		MarketComparableAvg: market.Avg,
		Status:              types.NegotiationStatusInitiated,
		CreatedAt:           time.Now().UTC(),
	}

	recordID, err := s.repo.Insert(ctx, record)
	if err != nil {
		zap.L().Error("Error persisting negotiation record", zap.String("record_id", record.ID), zap.Error(err))
		sentry.CaptureException(err)
		return result, &types.PersistenceError{Op: "insert negotiation record", Err: err}
	}
	result.RecordID = recordID

	event := types.NegotiationEvent{
		RecordID:       recordID,
		PropertyID:     record.PropertyID,
		LeadID:         record.LeadID,
		Strategy:       strategy,
		SuggestedPrice: suggestedPrice,
		Status:         record.Status,
	}
	if err := s.events.Publish(event); err != nil {
		zap.L().Error("Error publishing negotiation event", zap.String("record_id", recordID), zap.Error(err))
	}

	return result, nil
}
