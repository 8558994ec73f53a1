package memory

import (
	"testing"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	// Given an empty registry
	req.Equal(0, registry.Len())

	// When a participant registers
	p, err := registry.Register(id, "alice", nil)

	// Then it can be looked up
	req.NoError(err)
	req.Equal(id, p.ID)
	req.Equal("alice", p.Name)
	req.Empty(p.RoomID)

	found, err := registry.Lookup(id)
	req.NoError(err)
	req.Same(p, found)
	req.Equal(1, registry.Len())
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	_, err := registry.Register(id, "alice", nil)
	req.NoError(err)

	// When the same id registers again
	_, err = registry.Register(id, "alice again", nil)

	// Then it is rejected and the original stays
	req.ErrorIs(err, model.ErrDuplicateConnection)
	p, err := registry.Lookup(id)
	req.NoError(err)
	req.Equal("alice", p.Name)
}

func TestRegistry_Unregister(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	_, err := registry.Register(id, "alice", nil)
	req.NoError(err)

	p, ok := registry.Unregister(id)
	req.True(ok)
	req.Equal(id, p.ID)

	_, err = registry.Lookup(id)
	req.ErrorIs(err, model.ErrParticipantNotFound)

	// Unregistering again or an unknown id is a no-op
	_, ok = registry.Unregister(id)
	req.False(ok)
	_, ok = registry.Unregister(uuid.NewString())
	req.False(ok)
	req.Equal(0, registry.Len())
}
