package memory

import (
	"sync"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/samber/lo"
)

// Queue holds ids of participants waiting to be paired, oldest first.
type Queue struct {
	mx  *sync.Mutex
	ids []string
}

func NewQueue() *Queue {
	return &Queue{
		mx: &sync.Mutex{},
	}
}

// Enqueue appends id to the tail. It reports false if id is already waiting.
func (q *Queue) Enqueue(id string) bool {
	q.mx.Lock()
	defer q.mx.Unlock()

	if lo.Contains(q.ids, id) {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

// PushFront puts id at the head so it is paired before everyone else.
func (q *Queue) PushFront(id string) bool {
	q.mx.Lock()
	defer q.mx.Unlock()

	if lo.Contains(q.ids, id) {
		return false
	}
	q.ids = append([]string{id}, q.ids...)
	return true
}

// DequeuePair removes the two longest-waiting ids.
func (q *Queue) DequeuePair() (string, string, error) {
	q.mx.Lock()
	defer q.mx.Unlock()

	if len(q.ids) < 2 {
		return "", "", model.ErrEmptyQueue
	}
	first, second := q.ids[0], q.ids[1]
	q.ids = q.ids[2:]
	return first, second, nil
}

// Remove drops id if it is waiting. Absent ids are a no-op.
func (q *Queue) Remove(id string) bool {
	q.mx.Lock()
	defer q.mx.Unlock()

	if !lo.Contains(q.ids, id) {
		return false
	}
	q.ids = lo.Without(q.ids, id)
	return true
}

func (q *Queue) Contains(id string) bool {
	q.mx.Lock()
	defer q.mx.Unlock()
	return lo.Contains(q.ids, id)
}

func (q *Queue) Len() int {
	q.mx.Lock()
	defer q.mx.Unlock()
	return len(q.ids)
}

// IDs returns a copy of the waiting ids, oldest first.
func (q *Queue) IDs() []string {
	q.mx.Lock()
	defer q.mx.Unlock()
	return append([]string(nil), q.ids...)
}
