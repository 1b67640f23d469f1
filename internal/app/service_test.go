package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/hasami-shogi/internal/domain"
)

func TestCreateGameStartsInInitialPosition(t *testing.T) {
	s := NewService()
	gs, err := s.CreateGame()
	require.NoError(t, err)
	require.NotEmpty(t, gs.ID)

	assert.Equal(t, domain.Black, gs.Game.ActivePlayer())
	assert.Equal(t, domain.Unfinished, gs.Game.GameStatus())

	got, ok := s.Get(gs.ID)
	require.True(t, ok)
	assert.Equal(t, gs.ID, got.ID)
}

func TestJoinAssignsSeatsInOrder(t *testing.T) {
	s := NewService()
	gs, err := s.CreateGame()
	require.NoError(t, err)

	seat, _, err := s.Join(gs.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Black, seat)

	seat, _, err = s.Join(gs.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Red, seat)

	seat, _, err = s.Join(gs.ID, "carol")
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, seat, "third joiner spectates")

	// Rejoining keeps the seat.
	seat, _, err = s.Join(gs.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Red, seat)
}

func TestJoinUnknownGame(t *testing.T) {
	s := NewService()
	_, _, err := s.Join("nope", "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlayEnforcesSeatAndTurn(t *testing.T) {
	s := NewService()
	gs, err := s.CreateGame()
	require.NoError(t, err)
	_, _, err = s.Join(gs.ID, "alice")
	require.NoError(t, err)
	_, _, err = s.Join(gs.ID, "bob")
	require.NoError(t, err)

	_, _, err = s.Play(gs.ID, "mallory", "a1", "b1")
	assert.ErrorIs(t, err, ErrNotAPlayer)

	_, _, err = s.Play(gs.ID, "bob", "i1", "h1")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	st, outcome, err := s.Play(gs.ID, "alice", "a1", "b1")
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Captured)
	assert.Equal(t, domain.Unfinished, outcome.Status)
	assert.Equal(t, domain.Red, st.Game.ActivePlayer())

	// Now Red may move.
	_, _, err = s.Play(gs.ID, "bob", "i1", "h1")
	require.NoError(t, err)
}

func TestPlaySurfacesDomainRejections(t *testing.T) {
	s := NewService()
	gs, err := s.CreateGame()
	require.NoError(t, err)
	_, _, err = s.Join(gs.ID, "alice")
	require.NoError(t, err)

	_, _, err = s.Play(gs.ID, "alice", "a1", "b2")
	assert.ErrorIs(t, err, domain.ErrIllegalDirection)

	_, _, err = s.Play(gs.ID, "alice", "a1", "a2")
	assert.ErrorIs(t, err, domain.ErrDestinationOccupied)

	// Rejections must not consume the turn.
	st, ok := s.Get(gs.ID)
	require.True(t, ok)
	assert.Equal(t, domain.Black, st.Game.ActivePlayer())
}

func TestPlayBroadcastsToSubscribers(t *testing.T) {
	s := NewServiceWithRenderer(func(gs GameState) []byte {
		return []byte(gs.Game.ActivePlayer().String())
	})
	gs, err := s.CreateGame()
	require.NoError(t, err)
	_, _, err = s.Join(gs.ID, "alice")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, unsub := s.Subscribe(ctx, gs.ID)
	defer unsub()

	_, _, err = s.Play(gs.ID, "alice", "a1", "b1")
	require.NoError(t, err)

	select {
	case payload := <-ch:
		assert.Equal(t, "RED", string(payload))
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast payload")
	}
}

func TestSubscribeCreatesGameLazily(t *testing.T) {
	s := NewService()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, unsub := s.Subscribe(ctx, "watch-first")
	defer unsub()

	_, ok := s.Get("watch-first")
	assert.True(t, ok)
}
