package model

import (
	"encoding/json"
	"errors"
)

var (
	ErrDuplicateConnection = errors.New("participant is already connected")
	ErrParticipantNotFound = errors.New("participant is not found")
	ErrUnknownRoom         = errors.New("room is not found")
	ErrNotAnOccupant       = errors.New("participant is not an occupant of this room")
	ErrEmptyQueue          = errors.New("not enough participants waiting")
	ErrAlreadyInRoom       = errors.New("participant is already in a room")
	ErrSameParticipant     = errors.New("room requires two distinct participants")
)

// Role tells a freshly paired participant whether it should create the offer.
type Role string

const (
	RoleInitiator Role = "initiator"
	RoleResponder Role = "responder"
)

// CandidateLabel tells the receiving side which of its peer connections
// a candidate belongs to.
type CandidateLabel string

const (
	CandidateSender   CandidateLabel = "sender"
	CandidateReceiver CandidateLabel = "receiver"
)

// Outbound is implemented by the transport adapter, one method per message
// kind the server pushes to a participant. Calls must not block.
//
//go:generate mockgen -source=model.go -destination=../mocks/mock_outbound.go -package=mocks Outbound
type Outbound interface {
	Lobby()
	SendOffer(roomID string, role Role)
	Offer(roomID string, sdp json.RawMessage)
	Answer(roomID string, sdp json.RawMessage)
	Candidate(roomID string, candidate json.RawMessage, label CandidateLabel)
}

type Participant struct {
	ID     string
	Name   string
	Out    Outbound
	RoomID string // empty while waiting
}

// Stats is a point-in-time view of the matching state.
type Stats struct {
	Connections int            `json:"connections"`
	Waiting     int            `json:"waiting"`
	Rooms       int            `json:"rooms"`
	RoomStates  map[string]int `json:"room_states"`
}
