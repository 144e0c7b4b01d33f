package resource_test

import (
	"context"
	"testing"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreateThenGet(t *testing.T) {
	svc, pub, _ := newWidgetService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, widgetPatch{Name: resource.Some("bolt"), Size: resource.Some(3)})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), created.CreatedAt)
	assert.Nil(t, created.UpdatedAt)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bolt", loaded.Name)
	assert.Equal(t, 3, loaded.Size)
	assert.True(t, created.CreatedAt.Equal(loaded.CreatedAt))
	assert.Nil(t, loaded.UpdatedAt)

	assert.Equal(t, []string{resource.ActionCreated}, pub.actions())
}

func TestServiceGetUnknownID(t *testing.T) {
	svc, _, _ := newWidgetService(t)

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestServiceCreateValidates(t *testing.T) {
	svc, pub, _ := newWidgetService(t)

	_, err := svc.Create(context.Background(), widgetPatch{Size: resource.Some(1)})
	require.ErrorIs(t, err, resource.ErrInvalid)
	assert.Contains(t, err.Error(), "name is required")
	assert.Empty(t, pub.actions())
}

func TestServiceSuccessiveUpdatesMergeFields(t *testing.T) {
	svc, _, _ := newWidgetService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, widgetPatch{Name: resource.Some("bolt"), Size: resource.Some(3)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, widgetPatch{Name: resource.Some("nut")})
	require.NoError(t, err)
	note := "zinc"
	second, err := svc.Update(ctx, created.ID, widgetPatch{Note: resource.Some(&note)})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "nut", loaded.Name)
	assert.Equal(t, 3, loaded.Size)
	require.NotNil(t, loaded.Note)
	assert.Equal(t, "zinc", *loaded.Note)
	require.NotNil(t, loaded.UpdatedAt)
	assert.True(t, second.UpdatedAt.Equal(*loaded.UpdatedAt))
	assert.True(t, loaded.UpdatedAt.After(loaded.CreatedAt))
	assert.True(t, created.CreatedAt.Equal(loaded.CreatedAt))
}

func TestServiceUpdateRejectsInvalidAndKeepsRow(t *testing.T) {
	svc, pub, _ := newWidgetService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, widgetPatch{Name: resource.Some("bolt")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, widgetPatch{Name: resource.Some("far too long")})
	require.ErrorIs(t, err, resource.ErrInvalid)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bolt", loaded.Name)
	assert.Nil(t, loaded.UpdatedAt)
	assert.Equal(t, []string{resource.ActionCreated}, pub.actions())
}

func TestServiceDelete(t *testing.T) {
	svc, pub, _ := newWidgetService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, widgetPatch{Name: resource.Some("bolt")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), resource.ErrNotFound)

	assert.Equal(t, []string{resource.ActionCreated, resource.ActionDeleted}, pub.actions())
}
