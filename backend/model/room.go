package model

type RoomState int

const (
	RoomStateCreated RoomState = iota
	RoomStateOfferSent
	RoomStateAnswerSent
	RoomStateEstablished
)

func (s RoomState) String() string {
	switch s {
	case RoomStateCreated:
		return "created"
	case RoomStateOfferSent:
		return "offer_sent"
	case RoomStateAnswerSent:
		return "answer_sent"
	case RoomStateEstablished:
		return "established"
	}
	return "unknown"
}

// SignalKind is the kind of handshake message relayed inside a room.
type SignalKind int

const (
	SignalOffer SignalKind = iota
	SignalAnswer
	SignalCandidate
)

func (k SignalKind) String() string {
	switch k {
	case SignalOffer:
		return MessageTypeOffer
	case SignalAnswer:
		return MessageTypeAnswer
	case SignalCandidate:
		return MessageTypeCandidate
	}
	return "unknown"
}

// Room pairs exactly two participants. The initiator is the one that
// waited longer and is expected to create the offer.
type Room struct {
	ID        string
	Initiator *Participant
	Responder *Participant
	State     RoomState

	initiatorSent bool
	responderSent bool
}

func NewRoom(id string, initiator, responder *Participant) *Room {
	return &Room{
		ID:        id,
		Initiator: initiator,
		Responder: responder,
		State:     RoomStateCreated,
	}
}

func (r *Room) Has(participantID string) bool {
	return r.Initiator.ID == participantID || r.Responder.ID == participantID
}

// Other returns the counterpart of participantID.
func (r *Room) Other(participantID string) (*Participant, error) {
	switch participantID {
	case r.Initiator.ID:
		return r.Responder, nil
	case r.Responder.ID:
		return r.Initiator, nil
	}
	return nil, ErrNotAnOccupant
}

// Advance records a message of the given kind sent by participantID and
// moves the room along Created -> OfferSent -> AnswerSent -> Established.
// Established is reached once an answer has been seen and each side has
// sent an offer or answer. Candidates never change the state.
// It reports whether the state changed.
func (r *Room) Advance(kind SignalKind, participantID string) (bool, error) {
	if !r.Has(participantID) {
		return false, ErrNotAnOccupant
	}
	if kind == SignalCandidate {
		return false, nil
	}

	if participantID == r.Initiator.ID {
		r.initiatorSent = true
	} else {
		r.responderSent = true
	}

	prev := r.State
	switch kind {
	case SignalOffer:
		if r.State == RoomStateCreated {
			r.State = RoomStateOfferSent
		}
	case SignalAnswer:
		if r.State < RoomStateAnswerSent {
			r.State = RoomStateAnswerSent
		}
	}
	if r.State == RoomStateAnswerSent && r.initiatorSent && r.responderSent {
		r.State = RoomStateEstablished
	}
	return r.State != prev, nil
}
