package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

const collectionCities = "cities"

type CityRepository struct {
	col *mongo.Collection
}

func NewCityRepository(db *mongo.Database) *CityRepository {
	return &CityRepository{col: db.Collection(collectionCities)}
}

func (r *CityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.City
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CityRepository) GetAll(ctx context.Context) ([]*domain.City, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cities []*domain.City
	for cur.Next(ctx) {
		var c domain.City
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		cities = append(cities, &c)
	}
	return cities, cur.Err()
}
