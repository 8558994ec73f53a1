package memory

import (
	"sync"

	"github.com/adwski/webrtc-roulette/backend/model"
)

// Registry keeps every connected participant keyed by its id.
type Registry struct {
	mx *sync.RWMutex
	db map[string]*model.Participant
}

func NewRegistry() *Registry {
	return &Registry{
		mx: &sync.RWMutex{},
		db: make(map[string]*model.Participant),
	}
}

func (r *Registry) Register(id, name string, out model.Outbound) (*model.Participant, error) {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, ok := r.db[id]; ok {
		return nil, model.ErrDuplicateConnection
	}
	p := &model.Participant{
		ID:   id,
		Name: name,
		Out:  out,
	}
	r.db[id] = p
	return p, nil
}

// Unregister removes the participant and returns it. Unknown ids are a no-op.
func (r *Registry) Unregister(id string) (*model.Participant, bool) {
	r.mx.Lock()
	defer r.mx.Unlock()

	p, ok := r.db[id]
	if ok {
		delete(r.db, id)
	}
	return p, ok
}

func (r *Registry) Lookup(id string) (*model.Participant, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	p, ok := r.db[id]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	return p, nil
}

func (r *Registry) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return len(r.db)
}
