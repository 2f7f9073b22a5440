package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

const hostelsNS = "hostel_listing.hostels"

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockHostelStore(mt *mtest.T) *MongoHostelStore {
	return &MongoHostelStore{coll: mt.Coll, now: func() time.Time { return fixedNow }}
}

func TestMongoHostelStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get found", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, hostelsNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "h1"},
			{Key: "name", Value: "Sunrise Hostel"},
			{Key: "rentPerBed", Value: 8000.0},
			{Key: "facilities", Value: bson.A{"WiFi"}},
		}))

		h, err := store.Get(ctx, "h1")

		require.NoError(mt, err)
		assert.Equal(mt, "h1", h.ID)
		assert.Equal(mt, "Sunrise Hostel", h.Name)
		assert.Equal(mt, 8000.0, h.RentPerBed)
		assert.True(mt, h.HasFacility(models.FacilityWiFi))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, hostelsNS, mtest.FirstBatch))

		_, err := store.Get(ctx, "nope")

		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list pages", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, hostelsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(12)}}),
			mtest.CreateCursorResponse(0, hostelsNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "h1"}, {Key: "name", Value: "Sunrise"}},
				bson.D{{Key: "_id", Value: "h2"}, {Key: "name", Value: "Green Valley"}},
			),
		)

		page, err := store.List(ctx, ListOptions{Area: "Saddar"})

		require.NoError(mt, err)
		assert.Equal(mt, int64(12), page.TotalDocs)
		assert.Equal(mt, int64(2), page.TotalPages)
		assert.True(mt, page.HasNextPage)
		assert.False(mt, page.HasPrevPage)
		require.Len(mt, page.Hostels, 2)
		assert.Equal(mt, "Green Valley", page.Hostels[1].Name)
	})

	mt.Run("list rejects bad options", func(mt *mtest.T) {
		store := newMockHostelStore(mt)

		_, err := store.List(ctx, ListOptions{Page: -1})

		assert.ErrorIs(mt, err, ErrBadOption)
	})

	mt.Run("create derives fields", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		h := &models.Hostel{Name: "Sunrise", TotalBeds: 45, OccupiedBeds: 38}
		require.NoError(mt, store.Create(ctx, h))

		assert.NotEmpty(mt, h.ID)
		assert.Equal(mt, 7, h.AvailableBeds)
		assert.Equal(mt, fixedNow, h.CreatedAt)
		assert.Equal(mt, fixedNow, h.UpdatedAt)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(0)},
			bson.E{Key: "nModified", Value: int32(0)},
		))

		err := store.Update(ctx, &models.Hostel{ID: "gone"})

		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		err := store.Delete(ctx, "gone")

		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete existing", func(mt *mtest.T) {
		store := newMockHostelStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		assert.NoError(mt, store.Delete(ctx, "h1"))
	})
}

func TestMongoResidentStores(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("tenant duplicate cnic", func(mt *mtest.T) {
		store := &MongoTenantStore{coll: mt.Coll, now: func() time.Time { return fixedNow }}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := store.Create(ctx, &models.Tenant{Name: "Ali", CNIC: "41303-1234567-1"})

		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("tenant defaults to active", func(mt *mtest.T) {
		store := &MongoTenantStore{coll: mt.Coll, now: func() time.Time { return fixedNow }}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		tenant := &models.Tenant{Name: "Ali", CNIC: "41303-1234567-1"}
		require.NoError(mt, store.Create(ctx, tenant))

		assert.Equal(mt, models.TenantActive, tenant.Status)
		assert.NotEmpty(mt, tenant.ID)
	})

	mt.Run("payment gets generated id", func(mt *mtest.T) {
		store := &MongoPaymentStore{
			coll: mt.Coll,
			now:  func() time.Time { return fixedNow },
			intn: func(int) int { return 42 },
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Payment{TenantID: "t1", HostelID: "h1", Amount: 8000, DueDate: fixedNow.AddDate(0, 0, 5)}
		require.NoError(mt, store.Create(ctx, p))

		assert.Equal(mt, "PAY-1740830400000-42", p.PaymentID)
		assert.Equal(mt, models.PaymentPending, p.Status)
	})

	mt.Run("admin duplicate username", func(mt *mtest.T) {
		store := NewMongoAdminStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hostel_listing.admins", mtest.FirstBatch,
			bson.D{{Key: "username", Value: "root"}},
		))

		err := store.Create(ctx, &models.Admin{Username: "root"})

		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("admin missing", func(mt *mtest.T) {
		store := NewMongoAdminStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hostel_listing.admins", mtest.FirstBatch))

		_, err := store.FindByUsername(ctx, "ghost")

		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
