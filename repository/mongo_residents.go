package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

// ErrDuplicate is returned when a unique field is already taken.
var ErrDuplicate = errors.New("duplicate")

type MongoTenantStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoTenantStore(coll *mongo.Collection) *MongoTenantStore {
	return &MongoTenantStore{coll: coll, now: time.Now}
}

// EnsureIndexes creates the unique CNIC index.
func (s *MongoTenantStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cnic", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create tenant cnic index: %w", err)
	}
	return nil
}

func (s *MongoTenantStore) Create(ctx context.Context, t *models.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.BeforeChange(s.now())

	if _, err := s.coll.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: cnic %s", ErrDuplicate, t.CNIC)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (s *MongoTenantStore) Get(ctx context.Context, id string) (models.Tenant, error) {
	var t models.Tenant
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Tenant{}, ErrNotFound
	}
	if err != nil {
		return models.Tenant{}, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return t, nil
}

func (s *MongoTenantStore) ListByHostel(ctx context.Context, hostelID string) ([]models.Tenant, error) {
	filter := bson.M{}
	if hostelID != "" {
		filter["hostel"] = hostelID
	}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	defer cursor.Close(ctx)

	tenants := []models.Tenant{}
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("decode tenants: %w", err)
	}
	return tenants, nil
}

type MongoPaymentStore struct {
	coll *mongo.Collection
	now  func() time.Time
	intn func(n int) int
}

func NewMongoPaymentStore(coll *mongo.Collection) *MongoPaymentStore {
	return &MongoPaymentStore{
		coll: coll,
		now:  time.Now,
		intn: rand.Intn,
	}
}

func (s *MongoPaymentStore) Create(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.BeforeChange(models.OpCreate, s.now(), s.intn)

	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// List returns payments, most recent due date first, optionally narrowed
// to a tenant and/or hostel.
func (s *MongoPaymentStore) List(ctx context.Context, tenantID, hostelID string) ([]models.Payment, error) {
	filter := bson.M{}
	if tenantID != "" {
		filter["tenant"] = tenantID
	}
	if hostelID != "" {
		filter["hostel"] = hostelID
	}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "dueDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

type MongoAdminStore struct {
	coll *mongo.Collection
}

func NewMongoAdminStore(coll *mongo.Collection) *MongoAdminStore {
	return &MongoAdminStore{coll: coll}
}

func (s *MongoAdminStore) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("find admin %s: %w", username, err)
	}
	return a, nil
}

func (s *MongoAdminStore) Create(ctx context.Context, a *models.Admin) error {
	if _, err := s.FindByUsername(ctx, a.Username); err == nil {
		return fmt.Errorf("%w: username %s", ErrDuplicate, a.Username)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
