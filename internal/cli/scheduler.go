package cli

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerFiredMsg reports that a scheduled engine task is due.
type timerFiredMsg struct{ id uint64 }

// teaScheduler routes engine timers through the bubbletea event loop so
// completions run on the same goroutine as key and mouse handling.
//
// AfterFunc only queues a tea.Tick; the model collects queued commands
// with drain after every Update and runs the task when the tick's message
// comes back.
type teaScheduler struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]func()
	queued []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: make(map[uint64]func())}
}

// AfterFunc implements ravenscube.Scheduler.
func (s *teaScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.tasks[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, ok := s.tasks[id]
		delete(s.tasks, id)
		return ok
	}
}

// fire runs the task for id unless it was stopped.
func (s *teaScheduler) fire(id uint64) {
	s.mu.Lock()
	f, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()

	if ok {
		f()
	}
}

// drain returns the ticks queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	s.mu.Lock()
	cmds := s.queued
	s.queued = nil
	s.mu.Unlock()

	return tea.Batch(cmds...)
}

// pending returns the number of tasks that have not fired or been stopped.
func (s *teaScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
