package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub shipment repository and notifier
// ---------------------------------------------------------------------------

type stubShipmentRepo struct {
	shipments map[string]*domain.Shipment
	createErr error
	updateErr error

	updates []stateUpdate // recorded UpdateState calls in order
}

type stateUpdate struct {
	id        string
	state     domain.ShipmentState
	changedAt time.Time
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{shipments: make(map[string]*domain.Shipment)}
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.Shipment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.shipments[s.ID] = s
	return nil
}

func (r *stubShipmentRepo) FindByID(_ context.Context, id string) (*domain.Shipment, error) {
	s, ok := r.shipments[id]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return s, nil
}

func (r *stubShipmentRepo) FindPageByUser(_ context.Context, userID string, page, count int) ([]*domain.Shipment, error) {
	var owned []*domain.Shipment
	for _, s := range r.shipments {
		if s.UserID == userID {
			owned = append(owned, s)
		}
	}
	start := page * count
	if start >= len(owned) {
		return nil, nil
	}
	end := start + count
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], nil
}

func (r *stubShipmentRepo) FindChangedSince(_ context.Context, _ time.Time) ([]domain.StateChange, error) {
	return nil, nil
}

func (r *stubShipmentRepo) UpdateState(_ context.Context, id string, state domain.ShipmentState, changedAt time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.shipments[id]; !ok {
		return domain.ErrShipmentNotFound
	}
	r.updates = append(r.updates, stateUpdate{id: id, state: state, changedAt: changedAt})
	return nil
}

type stubNotifier struct {
	topics   []string
	payloads []any
}

func (n *stubNotifier) Publish(_ context.Context, topic string, payload any) {
	n.topics = append(n.topics, topic)
	n.payloads = append(n.payloads, payload)
}

func newShipmentSvc(repo *stubShipmentRepo, notifier *stubNotifier) *ShipmentService {
	return NewShipmentService(repo, notifier, zerolog.Nop())
}

var testShipmentInput = ports.CreateShipmentInput{
	OriginID:      "cdmx",
	DestinationID: "puebla",
	UserID:        "user_1",
	Weight:        1,
	Length:        22,
	Width:         16,
	Height:        11,
	Price:         3000,
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestShipmentService_Create(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := newShipmentSvc(repo, &stubNotifier{})

	id, err := svc.Create(context.Background(), testShipmentInput)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty shipment id")
	}

	saved, ok := repo.shipments[id]
	if !ok {
		t.Fatal("shipment not persisted under returned id")
	}
	if saved.State != domain.StateWaiting {
		t.Errorf("new shipment state = %s, want %s", saved.State, domain.StateWaiting)
	}
	if len(saved.StateHistory) != 1 || saved.StateHistory[0].State != domain.StateWaiting {
		t.Errorf("new shipment history = %+v, want single WAITING entry", saved.StateHistory)
	}
	if saved.Parcel.ChargeableWeight != 2 {
		t.Errorf("chargeable weight = %v, want 2", saved.Parcel.ChargeableWeight)
	}
	if saved.Parcel.Price != 3000 {
		t.Errorf("price = %v, want the caller-supplied 3000", saved.Parcel.Price)
	}
	if saved.UserID != "user_1" {
		t.Errorf("owner = %s, want user_1", saved.UserID)
	}
}

func TestShipmentService_Create_DistinctIDs(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := newShipmentSvc(repo, &stubNotifier{})

	a, _ := svc.Create(context.Background(), testShipmentInput)
	b, _ := svc.Create(context.Background(), testShipmentInput)
	if a == b {
		t.Fatalf("two creations produced the same id %q", a)
	}
}

func TestShipmentService_Create_RepositoryFailure(t *testing.T) {
	repo := newStubShipmentRepo()
	repo.createErr = errors.New("write concern error")
	svc := newShipmentSvc(repo, &stubNotifier{})

	id, err := svc.Create(context.Background(), testShipmentInput)
	if !errors.Is(err, repo.createErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if id != "" {
		t.Errorf("expected empty id on failure, got %q", id)
	}
}

func TestShipmentService_GetByID_NotFound(t *testing.T) {
	svc := newShipmentSvc(newStubShipmentRepo(), &stubNotifier{})

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestShipmentService_ListByUser_Projection(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := newShipmentSvc(repo, &stubNotifier{})

	id, _ := svc.Create(context.Background(), testShipmentInput)

	summaries, err := svc.ListByUser(context.Background(), "user_1", 0, 20)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	got := summaries[0]
	if got.ID != id || got.State != domain.StateWaiting || got.Price != 3000 {
		t.Errorf("summary = %+v, want id=%s state=WAITING price=3000", got, id)
	}

	// another user sees nothing
	other, err := svc.ListByUser(context.Background(), "user_2", 0, 20)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected empty page for other user, got %d items", len(other))
	}
}

func TestShipmentService_ChangeState_PersistsAndPublishes(t *testing.T) {
	repo := newStubShipmentRepo()
	notifier := &stubNotifier{}
	svc := newShipmentSvc(repo, notifier)

	id, _ := svc.Create(context.Background(), testShipmentInput)

	if err := svc.ChangeState(context.Background(), id, domain.StateInTransit); err != nil {
		t.Fatalf("ChangeState returned error: %v", err)
	}

	if len(repo.updates) != 1 {
		t.Fatalf("expected 1 state update, got %d", len(repo.updates))
	}
	upd := repo.updates[0]
	if upd.id != id || upd.state != domain.StateInTransit {
		t.Errorf("update = %+v, want id=%s state=IN_TRANSIT", upd, id)
	}
	if upd.changedAt.IsZero() || upd.changedAt.Location() != time.UTC {
		t.Errorf("changedAt %v not a UTC instant", upd.changedAt)
	}

	if len(notifier.topics) != 1 || notifier.topics[0] != TopicForShipment(id) {
		t.Fatalf("published topics = %v, want [%s]", notifier.topics, TopicForShipment(id))
	}
	event, ok := notifier.payloads[0].(domain.ShipmentStateChanged)
	if !ok {
		t.Fatalf("published payload has type %T", notifier.payloads[0])
	}
	if event.ShipmentID != id || event.NewState != domain.StateInTransit {
		t.Errorf("event = %+v, want shipment %s in IN_TRANSIT", event, id)
	}
	if !event.ChangedAt.Equal(upd.changedAt) {
		t.Errorf("event timestamp %v differs from persisted %v", event.ChangedAt, upd.changedAt)
	}
}

func TestShipmentService_ChangeState_UnknownState(t *testing.T) {
	repo := newStubShipmentRepo()
	notifier := &stubNotifier{}
	svc := newShipmentSvc(repo, notifier)

	id, _ := svc.Create(context.Background(), testShipmentInput)

	err := svc.ChangeState(context.Background(), id, "LOST")
	if !errors.Is(err, domain.ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Errorf("rejected state reached the repository")
	}
	if len(notifier.topics) != 0 {
		t.Errorf("rejected state was published")
	}
}

func TestShipmentService_ChangeState_NoPublishOnWriteFailure(t *testing.T) {
	repo := newStubShipmentRepo()
	notifier := &stubNotifier{}
	svc := newShipmentSvc(repo, notifier)

	err := svc.ChangeState(context.Background(), "missing", domain.StateDelivered)
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
	if len(notifier.topics) != 0 {
		t.Errorf("event published despite failed persistence")
	}
}
