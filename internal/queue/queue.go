// Package queue implements a fixed-size worker pool that runs
// independent puzzle-solving tasks concurrently and reports results as
// they complete.
package queue

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Task is one unit of work: a name for logging and the func that does
// the solving. Result strings are produced by the func itself, not
// returned separately, matching how the original C++ packaged_task
// closures captured their own result.
type Task struct {
	ID   string
	Name string
	Run  func() string
}

// NewTask wraps run with a fresh trace ID so log lines from Queue can
// correlate a puzzle with its eventual result.
func NewTask(name string, run func() string) Task {
	return Task{ID: uuid.New().String(), Name: name, Run: run}
}

// Queue is a pool of worker goroutines draining a shared channel of
// Tasks and publishing each one's result on a results channel, in
// whatever order it finishes — translated from the original
// TaskQueue's mutex/condition-variable deque pair into Go channels.
type Queue struct {
	tasks     chan Task
	results   chan string
	log       *logrus.Logger
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts numWorkers goroutines. log receives a debug line when a
// worker picks up a task and an info line when it finishes; a nil log
// falls back to a logger with output discarded.
func New(numWorkers int, log *logrus.Logger) *Queue {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	q := &Queue{
		tasks:   make(chan Task),
		results: make(chan string),
		log:     log,
	}
	q.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go q.worker(i)
	}
	return q
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for t := range q.tasks {
		q.log.WithFields(logrus.Fields{"worker": id, "task": t.ID, "name": t.Name}).Debug("task started")
		result := t.Run()
		q.log.WithFields(logrus.Fields{"worker": id, "task": t.ID, "name": t.Name}).Info("task finished")
		// Deliver the result from its own goroutine so the worker can take
		// the next task even while nobody is reading Results() yet.
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.results <- result
		}()
	}
}

// Add enqueues a task for some idle worker to pick up. It blocks if
// every worker is busy and the channel is unbuffered-full, mirroring
// the original's notify-on-add/wait-on-empty behavior.
func (q *Queue) Add(t Task) { q.tasks <- t }

// Close signals that no more tasks will be added. Workers finish their
// current task and exit once the tasks channel drains; Results()
// closes once every worker has exited and every result has been
// delivered. Idempotent: calling Close more
// than once is safe.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.tasks)
		go func() {
			q.wg.Wait()
			close(q.results)
		}()
	})
}

// Results returns the channel of completed task results, closed once
// Close has been called and every in-flight task has finished.
func (q *Queue) Results() <-chan string { return q.results }
