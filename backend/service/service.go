package service

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/rs/zerolog"
)

var (
	ErrConnect = errors.New("unable to connect")
)

type (
	Registry interface {
		Register(id, name string, out model.Outbound) (*model.Participant, error)
		Unregister(id string) (*model.Participant, bool)
		Lookup(id string) (*model.Participant, error)
		Len() int
	}

	Queue interface {
		Enqueue(id string) bool
		PushFront(id string) bool
		DequeuePair() (string, string, error)
		Remove(id string) bool
		Len() int
	}

	RoomTable interface {
		Create(initiator, responder *model.Participant) (*model.Room, error)
		Get(roomID string) (*model.Room, error)
		Destroy(roomID string) (string, string, error)
		Len() int
		States() map[string]int
	}

	Switch interface {
		RouteOffer(roomID, senderID string, sdp json.RawMessage) error
		RouteAnswer(roomID, senderID string, sdp json.RawMessage) error
		RouteCandidate(roomID, senderID string, candidate json.RawMessage, label model.CandidateLabel) error
	}

	// Service pairs waiting participants and relays their handshake.
	// Every operation runs under one mutex, so pairing, teardown and
	// routing never interleave.
	Service struct {
		mx       *sync.Mutex
		registry Registry
		queue    Queue
		rooms    RoomTable
		sw       Switch
		logger   zerolog.Logger
	}

	Config struct {
		Registry  Registry
		Queue     Queue
		RoomTable RoomTable
		Switch    Switch
		Logger    *zerolog.Logger
	}
)

func NewService(cfg Config) *Service {
	return &Service{
		mx:       &sync.Mutex{},
		registry: cfg.Registry,
		queue:    cfg.Queue,
		rooms:    cfg.RoomTable,
		sw:       cfg.Switch,
		logger:   cfg.Logger.With().Str("component", "matching").Logger(),
	}
}

// OnConnect registers a participant, puts it in the lobby and pairs
// everyone that can be paired.
func (svc *Service) OnConnect(id, name string, out model.Outbound) error {
	svc.mx.Lock()
	defer svc.mx.Unlock()

	p, err := svc.registry.Register(id, name, out)
	if err != nil {
		return errors.Join(ErrConnect, err)
	}
	svc.logger.Debug().
		Str("participantID", id).
		Str("name", name).
		Msg("participant connected")

	p.Out.Lobby()
	svc.queue.Enqueue(id)
	svc.match()
	return nil
}

// OnDisconnect forgets the participant. If it was in a room the room is
// torn down and the counterpart goes back to the head of the queue.
func (svc *Service) OnDisconnect(id string) {
	svc.mx.Lock()
	defer svc.mx.Unlock()

	p, ok := svc.registry.Unregister(id)
	if !ok {
		return
	}
	svc.queue.Remove(id)
	svc.logger.Debug().
		Str("participantID", id).
		Str("name", p.Name).
		Msg("participant disconnected")

	if p.RoomID == "" {
		return
	}
	roomID := p.RoomID
	initiatorID, responderID, err := svc.rooms.Destroy(roomID)
	if err != nil {
		svc.logger.Error().Err(err).Str("roomID", roomID).Msg("failed to destroy room")
		return
	}
	svc.logger.Debug().Str("roomID", roomID).Msg("room destroyed")

	otherID := initiatorID
	if otherID == id {
		otherID = responderID
	}
	other, err := svc.registry.Lookup(otherID)
	if err != nil {
		return
	}
	svc.queue.PushFront(otherID)
	other.Out.Lobby()
	svc.logger.Debug().
		Str("participantID", otherID).
		Str("roomID", roomID).
		Msg("counterpart returned to queue")
	svc.match()
}

func (svc *Service) OnOffer(roomID, senderID string, sdp json.RawMessage) {
	svc.relay(model.SignalOffer, roomID, senderID, func() error {
		return svc.sw.RouteOffer(roomID, senderID, sdp)
	})
}

func (svc *Service) OnAnswer(roomID, senderID string, sdp json.RawMessage) {
	svc.relay(model.SignalAnswer, roomID, senderID, func() error {
		return svc.sw.RouteAnswer(roomID, senderID, sdp)
	})
}

func (svc *Service) OnCandidate(roomID, senderID string, candidate json.RawMessage, label model.CandidateLabel) {
	svc.relay(model.SignalCandidate, roomID, senderID, func() error {
		return svc.sw.RouteCandidate(roomID, senderID, candidate, label)
	})
}

// Stats returns current counters.
func (svc *Service) Stats() model.Stats {
	svc.mx.Lock()
	defer svc.mx.Unlock()

	return model.Stats{
		Connections: svc.registry.Len(),
		Waiting:     svc.queue.Len(),
		Rooms:       svc.rooms.Len(),
		RoomStates:  svc.rooms.States(),
	}
}

// relay drops messages for unknown rooms and from non-occupants.
// Both are expected races with disconnects and are never reported back.
func (svc *Service) relay(kind model.SignalKind, roomID, senderID string, route func() error) {
	svc.mx.Lock()
	defer svc.mx.Unlock()

	logger := svc.logger.With().
		Str("roomID", roomID).
		Str("src", senderID).
		Str("type", kind.String()).Logger()

	room, err := svc.rooms.Get(roomID)
	if err != nil {
		logger.Debug().Msg("message for unknown room dropped")
		return
	}
	if !room.Has(senderID) {
		logger.Debug().Msg("message from non-occupant dropped")
		return
	}
	if err = route(); err != nil {
		logger.Debug().Err(err).Msg("message dropped")
	}
}

// match pairs waiting participants until fewer than two are left.
// Must be called with svc.mx held.
func (svc *Service) match() {
	for {
		firstID, secondID, err := svc.queue.DequeuePair()
		if err != nil {
			return
		}

		first, errF := svc.registry.Lookup(firstID)
		second, errS := svc.registry.Lookup(secondID)
		switch {
		case errF != nil && errS != nil:
			continue
		case errF != nil:
			svc.queue.PushFront(secondID)
			continue
		case errS != nil:
			svc.queue.PushFront(firstID)
			continue
		}

		room, err := svc.rooms.Create(first, second)
		if err != nil {
			svc.logger.Error().Err(err).
				Str("initiator", firstID).
				Str("responder", secondID).
				Msg("failed to create room")
			svc.queue.PushFront(secondID)
			svc.queue.PushFront(firstID)
			return
		}
		svc.logger.Debug().
			Str("roomID", room.ID).
			Str("initiator", firstID).
			Str("responder", secondID).
			Msg("participants paired")
	}
}
