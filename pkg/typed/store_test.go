package typed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmzhu2/yui3/internal/platform"
	"github.com/xmzhu2/yui3/pkg/core"
	"github.com/xmzhu2/yui3/pkg/typed"
)

func TestStore_TypedRoundTrip(t *testing.T) {
	base, err := platform.New(t.TempDir(), platform.WithAutoInit(true))
	require.NoError(t, err)
	store := typed.NewStore[person](base)
	ctx := context.TODO()

	r, err := store.New(person{Name: "Grace", Age: 46})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, r))
	require.False(t, r.Model.IsNew())

	loaded, err := store.Load(ctx, r.Model.ID())
	require.NoError(t, err)
	got, err := loaded.Data()
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name)

	ids, err := store.List(ctx, "*")
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	require.NoError(t, store.Delete(ctx, r))
	_, err = store.Load(ctx, r.Model.ID())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_NewRejectsInvalidData(t *testing.T) {
	base, err := platform.New("", platform.WithValidator(func(attrs map[string]any) error {
		if age, ok := attrs["age"].(float64); ok && age < 0 {
			return assert.AnError
		}
		return nil
	}))
	require.NoError(t, err)
	store := typed.NewStore[person](base)

	_, err = store.New(person{Name: "x", Age: -1})
	assert.ErrorIs(t, err, core.ErrValidation)
}
