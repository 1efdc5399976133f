package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/car-rental-backoffice/internal/models"
)

func setupCarCollection(t *testing.T) *MongoCarCollection {
	t.Helper()
	client, err := ConnectMongo()
	if err != nil {
		t.Skipf("failed to create client: %v, skipping integration test", err)
	}
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	collection := client.Database("test_car_rental").Collection("cars")
	collection.Drop(context.Background())
	return &MongoCarCollection{Collection: collection}
}

func TestMongoCarCollection_FindCarsFilters(t *testing.T) {
	cars := setupCarCollection(t)

	seed := []models.Car{
		{Brand: "Toyota", Model: "Camry", PricePerDay: 1000, Location: "Manila", IsAvailable: true},
		{Brand: "Toyota", Model: "Vios", PricePerDay: 500, Location: "Cebu", IsAvailable: false},
		{Brand: "Honda", Model: "Civic", PricePerDay: 800, Location: "Manila", IsAvailable: true, Archived: false},
	}
	for _, car := range seed {
		_, err := cars.InsertCar(context.Background(), car)
		require.NoError(t, err)
	}

	// brand filter is case-insensitive
	found, total, err := cars.FindCars(context.Background(), CarFilter{Brand: "toyota"}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)

	// price range
	min, max := 600.0, 900.0
	found, total, err = cars.FindCars(context.Background(), CarFilter{MinPrice: &min, MaxPrice: &max}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "Civic", found[0].Model)

	// availability
	available := true
	_, total, err = cars.FindCars(context.Background(), CarFilter{IsAvailable: &available}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMongoCarCollection_FindCarsPagination(t *testing.T) {
	cars := setupCarCollection(t)

	for i := 0; i < 5; i++ {
		_, err := cars.InsertCar(context.Background(), models.Car{Brand: "Toyota", Model: "Camry", PricePerDay: 100})
		require.NoError(t, err)
	}

	page1, total, err := cars.FindCars(context.Background(), CarFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page1, 2)

	page3, _, err := cars.FindCars(context.Background(), CarFilter{}, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestMongoCarCollection_ArchiveHidesFromDefaultListing(t *testing.T) {
	cars := setupCarCollection(t)

	created, err := cars.InsertCar(context.Background(), models.Car{Brand: "Ford", Model: "Focus", IsAvailable: true})
	require.NoError(t, err)

	archived, err := cars.SetArchived(context.Background(), created.ID.Hex(), true)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.False(t, archived.IsAvailable)

	_, total, err := cars.FindCars(context.Background(), CarFilter{}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = cars.FindCars(context.Background(), CarFilter{Archived: true}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	restored, err := cars.SetArchived(context.Background(), created.ID.Hex(), false)
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.True(t, restored.IsAvailable)
}

func TestMongoCarCollection_UpdateCar(t *testing.T) {
	cars := setupCarCollection(t)

	created, err := cars.InsertCar(context.Background(), models.Car{Brand: "Toyota", Model: "Camry", PricePerDay: 1000})
	require.NoError(t, err)

	updated, err := cars.UpdateCar(context.Background(), created.ID.Hex(), models.Car{
		Brand:       "Toyota",
		Model:       "Camry Hybrid",
		PricePerDay: 1200,
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Camry Hybrid", updated.Model)
	assert.Equal(t, 1200.0, updated.PricePerDay)
	assert.Equal(t, created.ID, updated.ID)

	_, err = cars.UpdateCar(context.Background(), "not-a-hex-id", models.Car{})
	assert.ErrorIs(t, err, ErrNotFound)
}
