package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/testutil"
)

func ptr(s string) *string { return &s }

func TestBroadcaster_SubscribeReplaysCurrentState(t *testing.T) {
	b := NewBroadcaster("s1", testutil.NewMemorySnapshots(), testutil.Discard())

	var got []model.AuthState
	unsubscribe := b.Subscribe(func(s model.AuthState) { got = append(got, s) })
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.Equal(t, model.AuthState{}, got[0])
}

func TestBroadcaster_SetMergesAndNotifiesInOrder(t *testing.T) {
	ctx := context.Background()
	b := NewBroadcaster("s1", testutil.NewMemorySnapshots(), testutil.Discard())

	var order []string
	unsub1 := b.Subscribe(func(model.AuthState) { order = append(order, "first") })
	defer unsub1()
	unsub2 := b.Subscribe(func(model.AuthState) { order = append(order, "second") })
	defer unsub2()
	order = nil

	b.Set(ctx, model.StatePatch{ID: ptr("u1"), Email: ptr("a@x.com")})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, model.AuthState{ID: "u1", Email: "a@x.com"}, b.Snapshot())

	// Partial merge keeps unspecified fields.
	b.Set(ctx, model.StatePatch{DisplayName: ptr("Ana")})
	assert.Equal(t, model.AuthState{ID: "u1", Email: "a@x.com", DisplayName: "Ana"}, b.Snapshot())
}

func TestBroadcaster_SubscriberGetsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	b := NewBroadcaster("s1", testutil.NewMemorySnapshots(), testutil.Discard())

	var received model.AuthState
	unsubscribe := b.Subscribe(func(s model.AuthState) { received = s })
	defer unsubscribe()

	b.Set(ctx, model.StatePatch{ID: ptr("u1")})
	snapshot := received

	b.Set(ctx, model.StatePatch{ID: ptr("u2")})

	assert.Equal(t, "u1", snapshot.ID)
	assert.Equal(t, "u2", received.ID)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	b := NewBroadcaster("s1", testutil.NewMemorySnapshots(), testutil.Discard())

	removedCalls := 0
	keptCalls := 0
	unsubRemoved := b.Subscribe(func(model.AuthState) { removedCalls++ })
	unsubKept := b.Subscribe(func(model.AuthState) { keptCalls++ })
	defer unsubKept()

	unsubRemoved()
	// Calling unsubscribe twice must not remove anyone else.
	unsubRemoved()

	b.Set(ctx, model.StatePatch{ID: ptr("u1")})

	assert.Equal(t, 1, removedCalls, "only the replay-on-subscribe call")
	assert.Equal(t, 2, keptCalls)
}

func TestBroadcaster_PersistsWhenSignedInClearsWhenNot(t *testing.T) {
	ctx := context.Background()
	snapshots := testutil.NewMemorySnapshots()
	b := NewBroadcaster("s1", snapshots, testutil.Discard())

	b.Set(ctx, model.StatePatch{ID: ptr("u1"), Email: ptr("a@x.com")})
	require.True(t, snapshots.Has("s1"))

	b.Reset(ctx)
	assert.False(t, snapshots.Has("s1"))
	assert.Equal(t, model.AuthState{}, b.Snapshot())
}

func TestBroadcaster_ResetNotifiesWithAllFieldsEmpty(t *testing.T) {
	ctx := context.Background()
	b := NewBroadcaster("s1", testutil.NewMemorySnapshots(), testutil.Discard())
	b.Set(ctx, model.StatePatch{ID: ptr("u1"), Email: ptr("a@x.com"), DisplayName: ptr("Ana")})

	var received model.AuthState
	unsubscribe := b.Subscribe(func(s model.AuthState) { received = s })
	defer unsubscribe()

	b.Reset(ctx)

	assert.Equal(t, model.AuthState{}, received)
}

func TestBroadcaster_HydrateSeedsPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := testutil.NewMemorySnapshots()
	require.NoError(t, snapshots.Save(ctx, "s1", model.AuthState{ID: "u1", Email: "a@x.com"}))

	b := NewBroadcaster("s1", snapshots, testutil.Discard())
	b.Hydrate(ctx)

	var got model.AuthState
	unsubscribe := b.Subscribe(func(s model.AuthState) { got = s })
	defer unsubscribe()

	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "a@x.com", got.Email)
}
