package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"estatebackend/config"
	"estatebackend/repository"
	"estatebackend/types"
)

type recordingPublisher struct {
	events []types.NegotiationEvent
}

func (p *recordingPublisher) Publish(event types.NegotiationEvent) error {
	p.events = append(p.events, event)
	return nil
}

type failingRepository struct{}

func (failingRepository) Insert(ctx context.Context, record types.NegotiationRecord) (string, error) {
	return "", errors.New("connection refused")
}

func newNegotiationForTest() (NegotiationServiceI, *repository.NegotiationRepositoryMemory, *recordingPublisher) {
	repo := repository.NewNegotiationRepositoryMemory()
	publisher := &recordingPublisher{}
	return NewNegotiationService(config.Default().Negotiation, repo, publisher), repo, publisher
}

func TestAnalyzeNegotiation_Validation(t *testing.T) {
	service, _, _ := newNegotiationForTest()

	_, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{BuyerBudgetMax: 9000000})
	var validationErr *types.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "listed_price" {
		t.Errorf("Expected listed_price validation error, got %v", err)
	}

	_, err = service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{ListedPrice: 10000000})
	if !errors.As(err, &validationErr) || validationErr.Field != "buyer_budget_max" {
		t.Errorf("Expected buyer_budget_max validation error, got %v", err)
	}
}

func TestAnalyzeNegotiation_SmallGap(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:    10000000,
		BuyerBudgetMin: 9000000,
		BuyerBudgetMax: 9700000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategySmallDiscount {
		t.Errorf("Expected small_discount, got %s", result.Strategy)
	}
	if result.SuggestedPrice != 9700000 {
		t.Errorf("Expected suggested price 9700000, got %v", result.SuggestedPrice)
	}
	if result.SuggestedDiscount != 3.0 {
		t.Errorf("Expected discount 3.0, got %v", result.SuggestedDiscount)
	}
	if !strings.Contains(result.Reasoning, "₹97,00,000") {
		t.Errorf("Expected formatted budget in reasoning, got %q", result.Reasoning)
	}
	if result.ExpectedOutcome != "High probability of acceptance" {
		t.Errorf("Unexpected outcome %q", result.ExpectedOutcome)
	}
}

func TestAnalyzeNegotiation_MidGapMeetsInTheMiddle(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:    10000000,
		BuyerBudgetMin: 8500000,
		BuyerBudgetMax: 9200000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategyNegotiateMiddle {
		t.Errorf("Expected negotiate_middle, got %s", result.Strategy)
	}
	if result.SuggestedPrice != 9600000 {
		t.Errorf("Expected midpoint 9600000, got %v", result.SuggestedPrice)
	}
	if result.SuggestedDiscount != 4.0 {
		t.Errorf("Expected discount 4.0, got %v", result.SuggestedDiscount)
	}
	if result.ExpectedOutcome != "Moderate probability, may need counter-offer" {
		t.Errorf("Unexpected outcome %q", result.ExpectedOutcome)
	}
}

func TestAnalyzeNegotiation_LargeGapHoldsPrice(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:    10000000,
		BuyerBudgetMin: 7000000,
		BuyerBudgetMax: 8000000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategyHoldOrAlternative {
		t.Errorf("Expected hold_or_alternative, got %s", result.Strategy)
	}
	// No comparables, so market average falls back to the listed price and
	// the overpriced overlay does not fire.
	if result.SuggestedPrice != 10000000 {
		t.Errorf("Expected listed price held, got %v", result.SuggestedPrice)
	}
	if result.ExpectedOutcome != "Low probability, suggest alternative property" {
		t.Errorf("Unexpected outcome %q", result.ExpectedOutcome)
	}
}

func TestAnalyzeNegotiation_OverpricedOverlayReprices(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:       10000000,
		BuyerBudgetMin:    7000000,
		BuyerBudgetMax:    8000000,
		MarketComparables: []float64{8000000, 8500000, 9000000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategyHoldOrAlternative {
		t.Errorf("Expected hold_or_alternative, got %s", result.Strategy)
	}
	if result.SuggestedPrice != 8500000 {
		t.Errorf("Expected market average 8500000, got %v", result.SuggestedPrice)
	}
	if result.SuggestedDiscount != 15.0 {
		t.Errorf("Expected discount 15.0, got %v", result.SuggestedDiscount)
	}
	if !strings.Contains(result.Reasoning, "priced above market average") {
		t.Errorf("Expected market overlay in reasoning, got %q", result.Reasoning)
	}
}

func TestAnalyzeNegotiation_BudgetAboveListedHoldsPrice(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:    5000000,
		BuyerBudgetMin: 5500000,
		BuyerBudgetMax: 6000000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategyHoldPrice {
		t.Errorf("Expected hold_price, got %s", result.Strategy)
	}
	if result.SuggestedPrice != 5000000 || result.SuggestedDiscount != 0 {
		t.Errorf("Expected listed price with no discount, got %v / %v", result.SuggestedPrice, result.SuggestedDiscount)
	}
	if result.ExpectedOutcome != "High probability buyer will accept listed price" {
		t.Errorf("Unexpected outcome %q", result.ExpectedOutcome)
	}
}

func TestAnalyzeNegotiation_OverlapStrongBuyerHolds(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:     5000000,
		BuyerBudgetMin:  4500000,
		BuyerBudgetMax:  5500000,
		PaymentCapacity: types.PaymentCapacityCashReady,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategyHoldPrice {
		t.Errorf("Expected hold_price for cash-ready buyer, got %s", result.Strategy)
	}
	if result.ExpectedOutcome != "High probability of acceptance at listed price" {
		t.Errorf("Unexpected outcome %q", result.ExpectedOutcome)
	}
}

func TestAnalyzeNegotiation_OverlapPendingFinancingQuickCloses(t *testing.T) {
	service, _, _ := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:     5000000,
		BuyerBudgetMin:  4500000,
		BuyerBudgetMax:  5500000,
		PaymentCapacity: types.PaymentCapacityFinancingPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != types.StrategyQuickClose {
		t.Errorf("Expected quick_close_discount, got %s", result.Strategy)
	}
	// Budget midpoint equals the listed price here, so no actual discount.
	if result.SuggestedPrice != 5000000 {
		t.Errorf("Expected midpoint 5000000, got %v", result.SuggestedPrice)
	}
	if result.SuggestedDiscount != 0 {
		t.Errorf("Expected discount 0, got %v", result.SuggestedDiscount)
	}
}

func TestAnalyzeNegotiation_PersistsRecordAndPublishes(t *testing.T) {
	service, repo, publisher := newNegotiationForTest()
	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		PropertyID:     "prop-42",
		LeadID:         "lead-7",
		ListedPrice:    10000000,
		BuyerBudgetMin: 9000000,
		BuyerBudgetMax: 9700000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RecordID == "" {
		t.Fatal("Expected a record id on success")
	}

	records := repo.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	record := records[0]
	if record.ID != result.RecordID {
		t.Errorf("Record id %s does not match result %s", record.ID, result.RecordID)
	}
	if record.Status != types.NegotiationStatusInitiated {
		t.Errorf("Expected status initiated, got %s", record.Status)
	}
	if record.SuggestedStrategy != types.StrategySmallDiscount {
		t.Errorf("Expected small_discount on record, got %s", record.SuggestedStrategy)
	}
	if record.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
	// Fallback market summary: 90%/110%/100% of the listed price.
	if record.MarketComparableMin != 9000000 || record.MarketComparableAvg != 10000000 {
		t.Errorf("Unexpected fallback market summary: min %v avg %v", record.MarketComparableMin, record.MarketComparableAvg)
	}
	if math.Abs(record.MarketComparableMax-11000000) > 1e-6 {
		t.Errorf("Unexpected fallback market max %v", record.MarketComparableMax)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.RecordID != result.RecordID || event.PropertyID != "prop-42" || event.Strategy != types.StrategySmallDiscount {
		t.Errorf("Unexpected event %+v", event)
	}
}

func TestAnalyzeNegotiation_PersistenceFailureStillReturnsStrategy(t *testing.T) {
	publisher := &recordingPublisher{}
	service := NewNegotiationService(config.Default().Negotiation, failingRepository{}, publisher)

	result, err := service.AnalyzeNegotiation(context.Background(), types.NegotiationInput{
		ListedPrice:    10000000,
		BuyerBudgetMin: 9000000,
		BuyerBudgetMax: 9700000,
	})
	var persistenceErr *types.PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Fatalf("Expected PersistenceError, got %v", err)
	}
	if result == nil {
		t.Fatal("Expected the computed strategy alongside the error")
	}
	if result.Strategy != types.StrategySmallDiscount {
		t.Errorf("Expected small_discount, got %s", result.Strategy)
	}
	if result.RecordID != "" {
		t.Errorf("Expected no record id when persistence failed, got %s", result.RecordID)
	}
	if len(publisher.events) != 0 {
		t.Errorf("Expected no events after failed persistence, got %d", len(publisher.events))
	}
}
