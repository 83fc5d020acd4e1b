package repository

import (
	"context"

	"estatebackend/types"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"
)

// NegotiationRepositoryMongo writes negotiation records into a mongo
// collection. The collection is handed in by main so the package carries no
// connection state of its own.
type NegotiationRepositoryMongo struct {
	collection *mongo.Collection
}

func NewNegotiationRepositoryMongo(collection *mongo.Collection) *NegotiationRepositoryMongo {
	return &NegotiationRepositoryMongo{collection: collection}
}

func (r *NegotiationRepositoryMongo) Insert(ctx context.Context, record types.NegotiationRecord) (string, error) {
	document := bson.M{
		"_id":                   record.ID,
		"property_id":           record.PropertyID,
		"lead_id":               record.LeadID,
		"listed_price":          record.ListedPrice,
		"buyer_budget_min":      record.BuyerBudgetMin,
		"buyer_budget_max":      record.BuyerBudgetMax,
		"suggested_price":       record.SuggestedPrice,
		"suggested_strategy":    record.SuggestedStrategy,
		"strategy_reasoning":    record.StrategyReasoning,
		"market_comparable_min": record.MarketComparableMin,
		"market_comparable_max": record.MarketComparableMax,
		"market_comparable_avg": record.MarketComparableAvg,
		"status":                record.Status,
		"created_at":            record.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, document); err != nil {
		zap.L().Error("Error inserting negotiation record", zap.String("record_id", record.ID), zap.Error(err))
		return "", err
	}
	return record.ID, nil
}
