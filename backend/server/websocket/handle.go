package websocket

import (
	"context"
	"encoding/json"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/rs/zerolog"
)

// connHandle is the outbound side of a single websocket connection.
// Pushes never block: when the buffer is full the message is dropped.
type connHandle struct {
	ctx    context.Context
	tx     chan model.Message
	logger *zerolog.Logger
}

func newConnHandle(ctx context.Context, size int, logger *zerolog.Logger) *connHandle {
	return &connHandle{
		ctx:    ctx,
		tx:     make(chan model.Message, size),
		logger: logger,
	}
}

func (h *connHandle) Lobby() {
	h.push(model.Message{Type: model.MessageTypeLobby})
}

func (h *connHandle) SendOffer(roomID string, role model.Role) {
	h.push(model.Message{
		Type:   model.MessageTypeSendOffer,
		RoomID: roomID,
		Role:   role,
	})
}

func (h *connHandle) Offer(roomID string, sdp json.RawMessage) {
	h.push(model.Message{
		Type:   model.MessageTypeOffer,
		RoomID: roomID,
		SDP:    sdp,
	})
}

func (h *connHandle) Answer(roomID string, sdp json.RawMessage) {
	h.push(model.Message{
		Type:   model.MessageTypeAnswer,
		RoomID: roomID,
		SDP:    sdp,
	})
}

func (h *connHandle) Candidate(roomID string, candidate json.RawMessage, label model.CandidateLabel) {
	h.push(model.Message{
		Type:      model.MessageTypeCandidate,
		RoomID:    roomID,
		Candidate: candidate,
		Label:     label,
	})
}

func (h *connHandle) push(msg model.Message) {
	if h.ctx.Err() != nil {
		return
	}
	select {
	case h.tx <- msg:
	default:
		h.logger.Warn().Str("type", msg.Type).Msg("send buffer is full, message dropped")
	}
}
