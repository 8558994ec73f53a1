package model

import "encoding/json"

// Message types exchanged over the signaling connection.
const (
	MessageTypeLobby     = "lobby"
	MessageTypeSendOffer = "send-offer"
	MessageTypeOffer     = "offer"
	MessageTypeAnswer    = "answer"
	MessageTypeCandidate = "add-ice-candidate"
)

// Message is a single signaling frame. Session descriptions and candidates
// are carried as raw JSON and never looked into. Validation tags apply to
// frames received from clients.
type Message struct {
	Type      string          `json:"type" validate:"required"`
	RoomID    string          `json:"roomId,omitempty" validate:"required"`
	Role      Role            `json:"role,omitempty"`
	SDP       json.RawMessage `json:"sdp,omitempty" validate:"required_if=Type offer,required_if=Type answer"`
	Candidate json.RawMessage `json:"candidate,omitempty" validate:"required_if=Type add-ice-candidate"`
	Label     CandidateLabel  `json:"label,omitempty" validate:"omitempty,oneof=sender receiver"`
}
