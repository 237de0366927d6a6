package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

const collectionShipments = "shipments"

// shipmentDoc mirrors domain.Shipment plus the state_changed_at field that
// drives the watcher's changed-since query.
type shipmentDoc struct {
	ID             string                     `bson:"_id"`
	OriginID       string                     `bson:"origin_id"`
	DestinationID  string                     `bson:"destination_id"`
	UserID         string                     `bson:"user_id"`
	Parcel         *domain.Parcel             `bson:"parcel"`
	State          domain.ShipmentState       `bson:"state"`
	StateChangedAt time.Time                  `bson:"state_changed_at"`
	StateHistory   []domain.StateHistoryEntry `bson:"state_history"`
	CreatedAt      time.Time                  `bson:"created_at"`
}

func (d *shipmentDoc) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:            d.ID,
		OriginID:      d.OriginID,
		DestinationID: d.DestinationID,
		UserID:        d.UserID,
		Parcel:        d.Parcel,
		State:         d.State,
		StateHistory:  d.StateHistory,
		CreatedAt:     d.CreatedAt,
	}
}

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment document with its initial history.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stateChangedAt := s.CreatedAt
	if n := len(s.StateHistory); n > 0 {
		stateChangedAt = s.StateHistory[n-1].ChangedAt
	}

	doc := shipmentDoc{
		ID:             s.ID,
		OriginID:       s.OriginID,
		DestinationID:  s.DestinationID,
		UserID:         s.UserID,
		Parcel:         s.Parcel,
		State:          s.State,
		StateChangedAt: stateChangedAt,
		StateHistory:   s.StateHistory,
		CreatedAt:      s.CreatedAt,
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// FindByID retrieves a shipment with its full state history.
func (r *ShipmentRepository) FindByID(ctx context.Context, id string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shipmentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindPageByUser returns one page of the user's shipments ordered by
// creation time descending. The offset is page*count.
func (r *ShipmentRepository) FindPageByUser(ctx context.Context, userID string, page, count int) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page * count)).
		SetLimit(int64(count))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var shipments []*domain.Shipment
	for cur.Next(ctx) {
		var doc shipmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		shipments = append(shipments, doc.toDomain())
	}
	return shipments, cur.Err()
}

// FindChangedSince returns the {id, state} tuples of shipments whose state
// changed after the given instant.
func (r *ShipmentRepository) FindChangedSince(ctx context.Context, since time.Time) ([]domain.StateChange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1, "state": 1})
	cur, err := r.col.Find(ctx, bson.M{"state_changed_at": bson.M{"$gt": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var changes []domain.StateChange
	for cur.Next(ctx) {
		var doc struct {
			ID    string               `bson:"_id"`
			State domain.ShipmentState `bson:"state"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		changes = append(changes, domain.StateChange{ShipmentID: doc.ID, State: doc.State})
	}
	return changes, cur.Err()
}

// UpdateState atomically sets the current state and appends a history entry.
// The write is unconditional; see the repository port for why.
func (r *ShipmentRepository) UpdateState(ctx context.Context, id string, state domain.ShipmentState, changedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"state":            state,
			"state_changed_at": changedAt.UTC(),
		},
		"$push": bson.M{
			"state_history": domain.StateHistoryEntry{State: state, ChangedAt: changedAt.UTC()},
		},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the listing and watcher queries.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "state_changed_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
