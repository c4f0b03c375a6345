package queue

import (
	"context"
	"sync"
)

// FakeQueue is an in-memory Queue for tests.
type FakeQueue struct {
	mu   sync.Mutex
	jobs []Job
}

func NewFakeQueue() *FakeQueue {
	return &FakeQueue{}
}

func (q *FakeQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *FakeQueue) EnqueueBulk(_ context.Context, jobs []Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, jobs...)
	return nil
}

// Jobs returns a copy of everything enqueued so far.
func (q *FakeQueue) Jobs() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}

// ByName filters enqueued jobs by name.
func (q *FakeQueue) ByName(name JobName) []Job {
	var out []Job
	for _, job := range q.Jobs() {
		if job.Name == name {
			out = append(out, job)
		}
	}
	return out
}

// Reset drops everything enqueued so far.
func (q *FakeQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = nil
}
