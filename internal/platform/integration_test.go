package platform_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmzhu2/yui3/internal/platform"
	"github.com/xmzhu2/yui3/pkg/core"
)

func TestNew_DetachedStore(t *testing.T) {
	store, err := platform.New("")
	require.NoError(t, err)
	ctx := context.TODO()

	m := store.NewModel()
	require.True(t, m.Set("name", "alpha"))

	// Detached persistence is a stub: saving succeeds but stores nothing.
	require.NoError(t, store.Save(ctx, m))
	_, err = store.List(ctx, "")
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

func TestNew_FileStoreRoundTrip(t *testing.T) {
	store, err := platform.New(t.TempDir(),
		platform.WithSchema(core.Schema{"name": {Default: ""}}),
		platform.WithAutoInit(true),
	)
	require.NoError(t, err)
	ctx := context.TODO()

	m := store.NewModel()
	require.True(t, m.Set("name", "alpha"))
	require.NoError(t, store.Save(ctx, m))
	require.False(t, m.IsNew(), "file store must assign an id on create")

	loaded, err := store.Load(ctx, m.ID())
	require.NoError(t, err)
	assert.Equal(t, "alpha", loaded.Get("name"))
	assert.False(t, loaded.IsModified())

	ids, err := store.List(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{m.ID()}, ids)

	require.NoError(t, store.Delete(ctx, m))
	_, err = store.Load(ctx, m.ID())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNew_YAMLFormat(t *testing.T) {
	store, err := platform.New(t.TempDir(),
		platform.WithFormat(".yaml"),
		platform.WithAutoInit(true),
	)
	require.NoError(t, err)
	ctx := context.TODO()

	m := store.NewModel()
	require.True(t, m.SetAttrs(map[string]any{"name": "beta", "count": 2}))
	require.NoError(t, store.Save(ctx, m))

	loaded, err := store.Load(ctx, m.ID())
	require.NoError(t, err)
	assert.Equal(t, "beta", loaded.Get("name"))
	assert.Equal(t, 2, loaded.Get("count"), "yaml decoder must preserve integers")
}

func TestNew_ValidatorInstalledOnModels(t *testing.T) {
	store, err := platform.New("",
		platform.WithValidator(func(attrs map[string]any) error {
			if _, ok := attrs["forbidden"]; ok {
				return errors.New("forbidden attribute")
			}
			return nil
		}),
	)
	require.NoError(t, err)

	m := store.NewModel()
	assert.False(t, m.Set("forbidden", 1))
	assert.True(t, m.Set("allowed", 1))
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := platform.New(t.TempDir(), platform.WithFormat(".xml"))
	assert.Error(t, err)
}

func TestNew_ClientIDsUseConfiguredGenerator(t *testing.T) {
	store, err := platform.New("", platform.WithIDGenerator(stubIDs{}))
	require.NoError(t, err)
	assert.Equal(t, "stub-1", store.NewModel().ClientID())
}

type stubIDs struct{}

func (stubIDs) Next() string { return "stub-1" }
