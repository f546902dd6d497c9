package mongo

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/storefront/catalog-api/internal/core/domain"
)

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	validID := primitive.NewObjectID().Hex()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewProductRepository(mt.DB)

		got, err := repo.Create(context.Background(), domain.ProductInput{Name: "Mouse", Price: 0, Category: "peripherals"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, got.ID)
		assert.Nil(mt, got.Quantity)
		assert.False(mt, got.CreatedAt.IsZero())
	})

	mt.Run("find by id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Desk"},
			{Key: "price", Value: 120.5},
			{Key: "category", Value: "furniture"},
			{Key: "quantity", Value: float64(4)},
		}))
		repo := NewProductRepository(mt.DB)

		got, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Desk", got.Name)
		require.NotNil(mt, got.Quantity)
		assert.Equal(mt, float64(4), *got.Quantity)
	})

	mt.Run("find by id miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch))
		repo := NewProductRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), validID)
		assert.ErrorIs(mt, err, domain.ErrProductNotFound)
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		name := "xx"

		_, err := repo.FindByID(context.Background(), "123")
		assert.ErrorIs(mt, err, domain.ErrProductNotFound)
		assert.ErrorIs(mt, repo.Update(context.Background(), "123", domain.ProductPatch{Name: &name}), domain.ErrProductNotFound)
		assert.ErrorIs(mt, repo.Delete(context.Background(), "123"), domain.ErrProductNotFound)
	})

	mt.Run("update no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})
		repo := NewProductRepository(mt.DB)
		price := 0.0

		err := repo.Update(context.Background(), validID, domain.ProductPatch{Price: &price})
		assert.ErrorIs(mt, err, domain.ErrProductNotFound)
	})

	mt.Run("update match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		repo := NewProductRepository(mt.DB)
		price := 0.0

		assert.NoError(mt, repo.Update(context.Background(), validID, domain.ProductPatch{Price: &price}))
	})

	mt.Run("replace", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		repo := NewProductRepository(mt.DB)

		assert.NoError(mt, repo.Replace(context.Background(), validID, domain.ProductInput{Name: "Desk", Price: 1, Category: "f"}))
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})
		repo := NewProductRepository(mt.DB)

		assert.NoError(mt, repo.Delete(context.Background(), validID))
	})

	mt.Run("delete no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})
		repo := NewProductRepository(mt.DB)

		assert.ErrorIs(mt, repo.Delete(context.Background(), validID), domain.ErrProductNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "A1"}, {Key: "category", Value: "c"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "B2"}, {Key: "category", Value: "c"}},
		))
		repo := NewProductRepository(mt.DB)

		got, err := repo.List(context.Background(), domain.ProductFilter{Category: "c", Page: 2, Limit: 10})
		require.NoError(mt, err)
		assert.Len(mt, got, 2)
	})
}

func TestPatchDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	name := "Chair"
	zero := 0.0

	doc := patchDocument(domain.ProductPatch{Name: &name, Price: &zero}, now)

	assert.Equal(t, bson.M{"name": "Chair", "price": 0.0, "updatedAt": now}, doc)
}

func TestPageSkip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{3, 10, 20},
		{0, 10, 0},
		{5, 0, 0},
		{math.MaxInt, 100, math.MaxInt64},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pageSkip(tc.page, tc.limit), "page=%d limit=%d", tc.page, tc.limit)
	}
}
