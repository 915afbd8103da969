package svproduct

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kcstudio/storefront/internal/app/domains/entity/etproduct"
	"kcstudio/storefront/internal/app/domains/modules/mdproduct"
	"kcstudio/storefront/internal/app/domains/repo/rpproduct"
	"kcstudio/storefront/internal/app/infra/persistence/dbtest"
	"kcstudio/storefront/internal/app/pkg/errorx"
)

func TestGetProduct(t *testing.T) {
	repo := rpproduct.NewProductRepository(dbtest.Open(t))
	svc := NewProductService(mdproduct.NewProductModule(repo))
	ctx := context.Background()

	p := &etproduct.Product{ImageURL: "https://cdn/a.png", Shape: "round", BasePrice: 2.5}
	require.NoError(t, repo.InsertIgnore(ctx, p))

	gallery, err := svc.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, gallery, 1)

	got, err := svc.GetProduct(ctx, gallery[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.png", got.ImageURL)

	_, err = svc.GetProduct(ctx, 9999)
	assert.ErrorIs(t, err, errorx.ErrProductNotFound)
}
