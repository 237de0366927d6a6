package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

const collectionFares = "fares"

type FareRepository struct {
	col *mongo.Collection
}

func NewFareRepository(db *mongo.Database) *FareRepository {
	return &FareRepository{col: db.Collection(collectionFares)}
}

// FindByTypeAndValue returns the tier covering value for the given type.
// Bounds are inclusive; a null to_value means the tier is unbounded.
func (r *FareRepository) FindByTypeAndValue(ctx context.Context, fareType domain.FareType, value float64) (*domain.Fare, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"type":       fareType,
		"from_value": bson.M{"$lte": value},
		"$or": bson.A{
			bson.M{"to_value": nil},
			bson.M{"to_value": bson.M{"$gte": value}},
		},
	}

	var f domain.Fare
	err := r.col.FindOne(ctx, filter).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFareNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindAllByType returns every tier for a type ordered by lower bound.
func (r *FareRepository) FindAllByType(ctx context.Context, fareType domain.FareType) ([]*domain.Fare, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "from_value", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"type": fareType}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var fares []*domain.Fare
	for cur.Next(ctx) {
		var f domain.Fare
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		fares = append(fares, &f)
	}
	return fares, cur.Err()
}
