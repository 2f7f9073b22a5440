package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

type MongoHostelStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoHostelStore(coll *mongo.Collection) *MongoHostelStore {
	return &MongoHostelStore{coll: coll, now: time.Now}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

func (s *MongoHostelStore) List(ctx context.Context, opts ListOptions) (Page, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return Page{}, err
	}

	filter := bson.M{}
	if opts.Area != "" {
		filter["address.area"] = opts.Area
	}
	if opts.RoomType != "" {
		filter["roomType"] = opts.RoomType
	}
	rent := bson.M{}
	if opts.MinRent > 0 {
		rent["$gte"] = opts.MinRent
	}
	if opts.MaxRent > 0 {
		rent["$lte"] = opts.MaxRent
	}
	if len(rent) > 0 {
		filter["rentPerBed"] = rent
	}

	return s.page(ctx, filter, opts.Limit, opts.Page)
}

func (s *MongoHostelStore) ListAvailable(ctx context.Context, limit, page int) (Page, error) {
	opts, err := ListOptions{Limit: limit, Page: page}.Normalize()
	if err != nil {
		return Page{}, err
	}
	return s.page(ctx, bson.M{"availableBeds": bson.M{"$gt": 0}}, opts.Limit, opts.Page)
}

func (s *MongoHostelStore) page(ctx context.Context, filter bson.M, limit, page int) (Page, error) {
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return Page{}, fmt.Errorf("count hostels: %w", err)
	}

	findOptions := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return Page{}, fmt.Errorf("find hostels: %w", err)
	}
	defer cursor.Close(ctx)

	var hostels []models.Hostel
	if err := cursor.All(ctx, &hostels); err != nil {
		return Page{}, fmt.Errorf("decode hostels: %w", err)
	}
	return newPage(hostels, total, limit, page), nil
}

// Search matches query case-insensitively against name, description
// and area.
func (s *MongoHostelStore) Search(ctx context.Context, query string, limit int) ([]models.Hostel, error) {
	limit, err := normalizeSearch(query, limit)
	if err != nil {
		return nil, err
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern}},
		bson.M{"description": bson.M{"$regex": pattern}},
		bson.M{"address.area": bson.M{"$regex": pattern}},
	}}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)).SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("search hostels: %w", err)
	}
	defer cursor.Close(ctx)

	hostels := []models.Hostel{}
	if err := cursor.All(ctx, &hostels); err != nil {
		return nil, fmt.Errorf("decode hostels: %w", err)
	}
	return hostels, nil
}

func (s *MongoHostelStore) Get(ctx context.Context, id string) (models.Hostel, error) {
	var h models.Hostel
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Hostel{}, ErrNotFound
	}
	if err != nil {
		return models.Hostel{}, fmt.Errorf("get hostel %s: %w", id, err)
	}
	return h, nil
}

func (s *MongoHostelStore) Create(ctx context.Context, h *models.Hostel) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.CreatedAt = time.Time{}
	h.BeforeChange(s.now())

	if _, err := s.coll.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert hostel: %w", err)
	}
	return nil
}

func (s *MongoHostelStore) Update(ctx context.Context, h *models.Hostel) error {
	h.BeforeChange(s.now())

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	if err != nil {
		return fmt.Errorf("update hostel %s: %w", h.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoHostelStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete hostel %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
