package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStore(t *testing.T) {
	store, err := NewSeededStore()
	require.NoError(t, err)
	ctx := context.Background()

	people, err := store.People(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, people)

	events, err := store.Events(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, events)

	p, err := store.PersonByID(ctx, people[0].ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, people[0].FirstName, p.FirstName)

	e, err := store.EventByID(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, events[0].Name, e.Name)
}

func TestLookupMissReturnsNil(t *testing.T) {
	store, err := NewSeededStore()
	require.NoError(t, err)
	ctx := context.Background()

	p, err := store.PersonByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, p)

	e, err := store.EventByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, e)
}
