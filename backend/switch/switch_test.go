package _switch

import (
	"encoding/json"
	"testing"

	"github.com/adwski/webrtc-roulette/backend/mocks"
	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/adwski/webrtc-roulette/backend/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	sw       *Switch
	room     *model.Room
	aliceOut *mocks.MockOutbound
	bobOut   *mocks.MockOutbound
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := zerolog.Nop()
	rooms := memory.NewRoomTable()

	aliceOut := mocks.NewMockOutbound(ctrl)
	bobOut := mocks.NewMockOutbound(ctrl)
	aliceOut.EXPECT().SendOffer(gomock.Any(), model.RoleInitiator)
	bobOut.EXPECT().SendOffer(gomock.Any(), model.RoleResponder)

	room, err := rooms.Create(
		&model.Participant{ID: "alice", Out: aliceOut},
		&model.Participant{ID: "bob", Out: bobOut},
	)
	require.NoError(t, err)

	return &fixture{
		sw:       NewSwitch(&logger, rooms),
		room:     room,
		aliceOut: aliceOut,
		bobOut:   bobOut,
	}
}

func TestSwitch_RouteOffer_ToCounterpartOnly(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	sdp := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)

	// Then bob gets it and alice gets nothing back
	f.bobOut.EXPECT().Offer(f.room.ID, sdp).Times(1)
	f.aliceOut.EXPECT().Offer(gomock.Any(), gomock.Any()).Times(0)

	// When alice sends an offer
	err := f.sw.RouteOffer(f.room.ID, "alice", sdp)

	req.NoError(err)
	req.Equal(model.RoomStateOfferSent, f.room.State)
}

func TestSwitch_Handshake(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	offer := json.RawMessage(`"offer"`)
	answer := json.RawMessage(`"answer"`)
	candidate := json.RawMessage(`{"candidate":"candidate:1"}`)

	gomock.InOrder(
		f.bobOut.EXPECT().Offer(f.room.ID, offer),
		f.aliceOut.EXPECT().Answer(f.room.ID, answer),
		f.aliceOut.EXPECT().Candidate(f.room.ID, candidate, model.CandidateReceiver),
	)

	req.NoError(f.sw.RouteOffer(f.room.ID, "alice", offer))
	req.Equal(model.RoomStateOfferSent, f.room.State)
	req.NoError(f.sw.RouteAnswer(f.room.ID, "bob", answer))
	req.Equal(model.RoomStateEstablished, f.room.State)
	req.NoError(f.sw.RouteCandidate(f.room.ID, "bob", candidate, model.CandidateReceiver))
	req.Equal(model.RoomStateEstablished, f.room.State)
}

func TestSwitch_RouteCandidate_KeepsOrder(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	var calls []*gomock.Call
	candidates := make([]json.RawMessage, 0, 5)
	for i := range 5 {
		c := json.RawMessage(`{"n":` + string(rune('0'+i)) + `}`)
		candidates = append(candidates, c)
		calls = append(calls, f.bobOut.EXPECT().Candidate(f.room.ID, c, model.CandidateSender))
	}
	gomock.InOrder(calls...)
	f.aliceOut.EXPECT().Candidate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, c := range candidates {
		req.NoError(f.sw.RouteCandidate(f.room.ID, "alice", c, model.CandidateSender))
	}
	// candidates alone do not move the room
	req.Equal(model.RoomStateCreated, f.room.State)
}

func TestSwitch_UnknownRoom(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// No delivery is expected on either side
	err := f.sw.RouteOffer("404", "alice", json.RawMessage(`"x"`))
	req.ErrorIs(err, model.ErrUnknownRoom)
	err = f.sw.RouteCandidate("404", "alice", json.RawMessage(`"x"`), model.CandidateSender)
	req.ErrorIs(err, model.ErrUnknownRoom)
}

func TestSwitch_NotAnOccupant(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	err := f.sw.RouteAnswer(f.room.ID, "mallory", json.RawMessage(`"x"`))
	req.ErrorIs(err, model.ErrNotAnOccupant)
	req.Equal(model.RoomStateCreated, f.room.State)
}
