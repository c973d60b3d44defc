package store

import (
	"context"
	"testing"

	"shopsync/feature/shopify/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.EcommerceInventory{},
		&models.SyncRun{},
		&models.SyncLog{},
	))
	return db
}

func TestUpsert_InsertThenUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	fact := models.InventoryFact{
		Store:     "store-a",
		SKU:       "SKU-1",
		ProductID: "100",
		VariantID: "200",
		Location:  "Main",
		Available: 5,
		Price:     decimal.NullDecimal{Decimal: decimal.NewFromFloat(19.99), Valid: true},
	}

	first, err := repo.Upsert(context.Background(), &fact, "Shopify")
	require.NoError(t, err)
	assert.False(t, first.Existed)
	assert.True(t, first.Updated)

	fact.Available = 7
	second, err := repo.Upsert(context.Background(), &fact, "Shopify")
	require.NoError(t, err)
	assert.True(t, second.Existed)
	assert.True(t, second.Updated)

	var rows []models.EcommerceInventory
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1, "repeated facts for one identity converge on one row")

	row := rows[0]
	assert.Equal(t, "Shopify", row.Platform)
	assert.Equal(t, "200", row.ExternalID, "variant id wins over product id")
	assert.Equal(t, 7, row.Available)
	assert.Equal(t, SystemActor, row.CreatedBy)
	assert.Equal(t, SystemActor, row.ModifiedBy)
	require.NotNil(t, row.ModifiedAt)
	assert.True(t, row.Price.Valid)
}

func TestUpsert_DistinctLocationsAreDistinctRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	for _, location := range []string{"", "Main"} {
		fact := models.InventoryFact{VariantID: "200", Location: location, Available: 1}
		_, err := repo.Upsert(context.Background(), &fact, "Shopify")
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.EcommerceInventory{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// The empty location is itself a stable identity bucket.
	fact := models.InventoryFact{VariantID: "200", Location: "", Available: 3}
	res, err := repo.Upsert(context.Background(), &fact, "Shopify")
	require.NoError(t, err)
	assert.True(t, res.Existed)

	require.NoError(t, db.Model(&models.EcommerceInventory{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpsert_ProductIDFallbackIdentity(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	fact := models.InventoryFact{ProductID: "100", Available: 2}
	_, err := repo.Upsert(context.Background(), &fact, "Shopify")
	require.NoError(t, err)

	var row models.EcommerceInventory
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "100", row.ExternalID)
}

func TestUpsert_EANMatchStampsInternalProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	product := models.Product{Name: "Chair", EAN: "4006381333931"}
	require.NoError(t, db.Create(&product).Error)
	byBarcode := models.Product{Name: "Table", Barcode: "5901234123457"}
	require.NoError(t, db.Create(&byBarcode).Error)

	t.Run("Match by EAN column", func(t *testing.T) {
		fact := models.InventoryFact{VariantID: "200", EAN: "4006381333931"}
		res, err := repo.Upsert(context.Background(), &fact, "Shopify")
		require.NoError(t, err)
		assert.False(t, res.UnmatchedEAN)
		require.NotNil(t, fact.InternalProductID)
		assert.Equal(t, product.ID, *fact.InternalProductID)

		var row models.EcommerceInventory
		require.NoError(t, db.Where("external_id = ?", "200").First(&row).Error)
		require.NotNil(t, row.ProductID)
		assert.Equal(t, product.ID, *row.ProductID)
	})

	t.Run("Match by barcode column", func(t *testing.T) {
		fact := models.InventoryFact{VariantID: "201", EAN: "5901234123457"}
		res, err := repo.Upsert(context.Background(), &fact, "Shopify")
		require.NoError(t, err)
		assert.False(t, res.UnmatchedEAN)
		require.NotNil(t, fact.InternalProductID)
		assert.Equal(t, byBarcode.ID, *fact.InternalProductID)
	})
}

func TestUpsert_UnmatchedEANStillPersists(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	fact := models.InventoryFact{VariantID: "200", EAN: "0000000000000", Available: 4}
	res, err := repo.Upsert(context.Background(), &fact, "Shopify")
	require.NoError(t, err)
	assert.True(t, res.UnmatchedEAN)
	assert.Nil(t, fact.InternalProductID)

	var row models.EcommerceInventory
	require.NoError(t, db.First(&row).Error)
	assert.Nil(t, row.ProductID)
	assert.Equal(t, 4, row.Available)
}
