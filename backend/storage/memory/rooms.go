package memory

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/samber/lo"
)

// RoomTable holds live rooms. Room ids come from a counter owned by the
// table and are never reused for the lifetime of the table.
type RoomTable struct {
	mx  *sync.RWMutex
	seq *atomic.Uint64
	db  map[string]*model.Room
}

func NewRoomTable() *RoomTable {
	return &RoomTable{
		mx:  &sync.RWMutex{},
		seq: &atomic.Uint64{},
		db:  make(map[string]*model.Room),
	}
}

// Create pairs initiator and responder into a new room and tells each of
// them its role. The initiator is expected to send the offer.
func (rt *RoomTable) Create(initiator, responder *model.Participant) (*model.Room, error) {
	if initiator.ID == responder.ID {
		return nil, model.ErrSameParticipant
	}

	rt.mx.Lock()
	if initiator.RoomID != "" || responder.RoomID != "" {
		rt.mx.Unlock()
		return nil, model.ErrAlreadyInRoom
	}
	room := model.NewRoom(strconv.FormatUint(rt.seq.Add(1), 10), initiator, responder)
	rt.db[room.ID] = room
	initiator.RoomID = room.ID
	responder.RoomID = room.ID
	rt.mx.Unlock()

	initiator.Out.SendOffer(room.ID, model.RoleInitiator)
	responder.Out.SendOffer(room.ID, model.RoleResponder)
	return room, nil
}

func (rt *RoomTable) Get(roomID string) (*model.Room, error) {
	rt.mx.RLock()
	defer rt.mx.RUnlock()

	room, ok := rt.db[roomID]
	if !ok {
		return nil, model.ErrUnknownRoom
	}
	return room, nil
}

// Destroy removes the room and returns the ids of the freed occupants,
// initiator first.
func (rt *RoomTable) Destroy(roomID string) (string, string, error) {
	rt.mx.Lock()
	defer rt.mx.Unlock()

	room, ok := rt.db[roomID]
	if !ok {
		return "", "", model.ErrUnknownRoom
	}
	delete(rt.db, roomID)
	room.Initiator.RoomID = ""
	room.Responder.RoomID = ""
	return room.Initiator.ID, room.Responder.ID, nil
}

func (rt *RoomTable) Len() int {
	rt.mx.RLock()
	defer rt.mx.RUnlock()
	return len(rt.db)
}

// Rooms returns the live rooms in no particular order.
func (rt *RoomTable) Rooms() []*model.Room {
	rt.mx.RLock()
	defer rt.mx.RUnlock()
	return lo.Values(rt.db)
}

// States counts live rooms per handshake state.
func (rt *RoomTable) States() map[string]int {
	rt.mx.RLock()
	defer rt.mx.RUnlock()

	return lo.CountValuesBy(lo.Values(rt.db), func(room *model.Room) string {
		return room.State.String()
	})
}
