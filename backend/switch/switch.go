package _switch

import (
	"encoding/json"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/rs/zerolog"
)

type RoomLookup interface {
	Get(roomID string) (*model.Room, error)
}

// Switch relays handshake messages to the other occupant of a room.
// It keeps no state of its own; callers serialize access to rooms.
type Switch struct {
	logger zerolog.Logger
	rooms  RoomLookup
}

func NewSwitch(logger *zerolog.Logger, rooms RoomLookup) *Switch {
	return &Switch{
		logger: logger.With().Str("component", "switch").Logger(),
		rooms:  rooms,
	}
}

func (sw *Switch) RouteOffer(roomID, senderID string, sdp json.RawMessage) error {
	return sw.forward(model.SignalOffer, roomID, senderID, func(dst model.Outbound) {
		dst.Offer(roomID, sdp)
	})
}

func (sw *Switch) RouteAnswer(roomID, senderID string, sdp json.RawMessage) error {
	return sw.forward(model.SignalAnswer, roomID, senderID, func(dst model.Outbound) {
		dst.Answer(roomID, sdp)
	})
}

func (sw *Switch) RouteCandidate(roomID, senderID string, candidate json.RawMessage, label model.CandidateLabel) error {
	return sw.forward(model.SignalCandidate, roomID, senderID, func(dst model.Outbound) {
		dst.Candidate(roomID, candidate, label)
	})
}

func (sw *Switch) forward(kind model.SignalKind, roomID, senderID string, deliver func(model.Outbound)) error {
	logger := sw.logger.With().
		Str("roomID", roomID).
		Str("type", kind.String()).
		Str("src", senderID).Logger()

	room, err := sw.rooms.Get(roomID)
	if err != nil {
		logger.Debug().Msg("dropped, room not found")
		return err
	}
	dst, err := room.Other(senderID)
	if err != nil {
		logger.Debug().Msg("dropped, sender is not in the room")
		return err
	}

	changed, _ := room.Advance(kind, senderID)
	if changed {
		logger.Debug().Str("state", room.State.String()).Msg("room state changed")
	}

	deliver(dst.Out)
	logger.Trace().Str("dst", dst.ID).Msg("forwarded")
	return nil
}
