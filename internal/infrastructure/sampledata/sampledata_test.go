package sampledata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectle/backend/internal/application/importing"
	"github.com/tectle/backend/internal/infrastructure/importers"
)

func TestBatches(t *testing.T) {
	batches, err := Batches()
	require.NoError(t, err)

	require.Len(t, batches["etsy"], 2)
	require.Len(t, batches["shopify"], 2)

	t.Run("every bundled payload parses cleanly", func(t *testing.T) {
		svc := importing.NewService(nil,
			importers.NewEtsyImporter(),
			importers.NewShopifyImporter(),
		)

		result, err := svc.ImportAll(context.Background(), batches)
		require.NoError(t, err)
		assert.Len(t, result.Orders, 4)
		assert.Empty(t, result.Failures)
	})
}

func TestBatchesFromFile(t *testing.T) {
	t.Run("reads batches from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "orders.json")
		require.NoError(t, os.WriteFile(path, payloads, 0644))

		batches, err := BatchesFromFile(path)
		require.NoError(t, err)
		assert.Len(t, batches["etsy"], 2)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := BatchesFromFile(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("garbage content is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "orders.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

		_, err := BatchesFromFile(path)
		assert.Error(t, err)
	})
}
