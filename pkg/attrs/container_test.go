package attrs_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmzhu2/yui3/pkg/attrs"
	"github.com/xmzhu2/yui3/pkg/core"
)

func TestNew_InitialValues(t *testing.T) {
	n := 0
	c := attrs.New(core.Schema{
		"id":    {Default: ""},
		"count": {Default: 10},
		"tag": {Generator: func() any {
			n++
			return fmt.Sprintf("tag-%d", n)
		}},
	})

	v, ok := c.Get("id")
	require.True(t, ok)
	assert.Equal(t, "", v)

	v, _ = c.Get("count")
	assert.Equal(t, 10, v)

	v, _ = c.Get("tag")
	assert.Equal(t, "tag-1", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSet_AppliesAndNotifies(t *testing.T) {
	c := attrs.New(core.Schema{"name": {Default: "old"}})

	var seen []core.ChangeOutcome
	c.Subscribe(func(out core.ChangeOutcome) { seen = append(seen, out) })

	out := c.Set("name", "new", core.SetOptions{Src: "test"})

	require.False(t, out.Cancelled)
	assert.Equal(t, "new", out.NewVal)
	assert.Equal(t, "old", out.PrevVal)
	assert.Equal(t, "test", out.Src)

	require.Len(t, seen, 1)
	assert.Equal(t, out, seen[0])

	v, _ := c.Get("name")
	assert.Equal(t, "new", v)
}

func TestSet_ReadOnlyCancelled(t *testing.T) {
	c := attrs.New(core.Schema{"kind": {Default: "fixed", ReadOnly: true}})

	notified := 0
	c.Subscribe(func(core.ChangeOutcome) { notified++ })

	out := c.Set("kind", "other", core.SetOptions{})

	require.True(t, out.Cancelled)
	assert.ErrorIs(t, out.Reason, core.ErrReadOnly)
	assert.Zero(t, notified, "cancelled writes must not notify")

	v, _ := c.Get("kind")
	assert.Equal(t, "fixed", v)
}

func TestSet_SetterTransformsAndRejects(t *testing.T) {
	rejected := errors.New("not a string")
	c := attrs.New(core.Schema{
		"name": {Setter: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, rejected
			}
			return strings.ToLower(s), nil
		}},
	})

	out := c.Set("name", "MiXeD", core.SetOptions{})
	require.False(t, out.Cancelled)
	assert.Equal(t, "mixed", out.NewVal)

	out = c.Set("name", 42, core.SetOptions{})
	require.True(t, out.Cancelled)
	assert.ErrorIs(t, out.Reason, rejected)

	v, _ := c.Get("name")
	assert.Equal(t, "mixed", v)
}

func TestSet_UndeclaredNamesAreDynamic(t *testing.T) {
	c := attrs.New(core.Schema{})

	out := c.Set("extra", 1, core.SetOptions{})
	require.False(t, out.Cancelled)

	v, ok := c.Get("extra")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	c := attrs.New(core.Schema{})

	calls := 0
	unsub := c.Subscribe(func(core.ChangeOutcome) { calls++ })

	c.Set("a", 1, core.SetOptions{})
	unsub()
	c.Set("a", 2, core.SetOptions{})

	assert.Equal(t, 1, calls)
}

func TestValuesAndNames(t *testing.T) {
	c := attrs.New(core.Schema{"b": {Default: 2}, "a": {Default: 1}})

	values := c.Values()
	values["a"] = 999
	v, _ := c.Get("a")
	assert.Equal(t, 1, v, "Values must return a copy")

	assert.Equal(t, []string{"a", "b"}, c.Names())
}
