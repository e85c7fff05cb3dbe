package seeders

import (
	"context"
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/db/testdb"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSeedOnlyFillsEmptyCatalog(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	created, err := DBSeed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 6, created)

	created, err = DBSeed(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, created)

	var total int64
	require.NoError(t, db.Model(&models.Product{}).Count(&total).Error)
	assert.Equal(t, int64(6), total)
}

func TestSampleProductsAreValid(t *testing.T) {
	for _, p := range SampleProducts() {
		assert.NoError(t, p.Validate(), p.Name)
		assert.True(t, p.InStock(), p.Name)
	}
}
