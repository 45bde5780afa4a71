package typed_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmzhu2/yui3/pkg/attrs"
	"github.com/xmzhu2/yui3/pkg/core"
	"github.com/xmzhu2/yui3/pkg/typed"
)

type person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestRecord_RoundTrip(t *testing.T) {
	m := core.NewModel(attrs.New(core.BaseSchema()))
	r := typed.Wrap[person](m)

	require.NoError(t, r.SetData(person{ID: "p1", Name: "Ada", Age: 36}))

	assert.Equal(t, "p1", m.ID())
	assert.Equal(t, "Ada", m.Get("name"))

	got, err := r.Data()
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 36, got.Age)
}

func TestRecord_SetDataValidation(t *testing.T) {
	m := core.NewModel(attrs.New(core.BaseSchema()))
	m.Validator = func(attrs map[string]any) error {
		if name, _ := attrs["name"].(string); name == "" {
			return errors.New("name required")
		}
		return nil
	}
	r := typed.Wrap[person](m)

	err := r.SetData(person{ID: "p1"})
	require.ErrorIs(t, err, core.ErrValidation)
	assert.Nil(t, m.Get("name"))
}

func TestRecord_CoalescesIntoOneEvent(t *testing.T) {
	m := core.NewModel(attrs.New(core.BaseSchema()))
	r := typed.Wrap[person](m)

	events := 0
	m.OnChange(func(core.ChangeEvent) { events++ })

	require.NoError(t, r.SetData(person{ID: "p1", Name: "Ada", Age: 36}))
	assert.Equal(t, 1, events, "one typed write must coalesce into one change event")
}
