package input

import (
	"sync"

	"github.com/wombatlabs/worldbridge/errors"
)

// CursorOp selects which cursor flag a command changes.
type CursorOp uint8

const (
	CursorLock CursorOp = iota
	CursorHide
)

// CursorCommand is a queued cursor-state change.
type CursorCommand struct {
	Op CursorOp
	On bool
}

// CommandQueue is the capability token for cursor-state writes. Cursor
// changes belong to the thread that owns the display, so the boundary
// only enqueues them; acknowledgement means enqueued, not applied.
// Reads of the snapshot observe the pre-change value until the owning
// thread drains the queue.
//
// Enqueue is safe to call from the boundary while the owner drains;
// nothing here blocks.
type CommandQueue struct {
	ch     chan CursorCommand
	mu     sync.Mutex
	closed bool
}

// NewCommandQueue creates a queue holding at most capacity pending
// commands.
func NewCommandQueue(capacity int) *CommandQueue {
	if capacity <= 0 {
		capacity = 16
	}
	return &CommandQueue{ch: make(chan CursorCommand, capacity)}
}

// Enqueue adds a command. A closed queue or a full queue is a send
// failure; the command is dropped, never applied partially.
func (q *CommandQueue) Enqueue(cmd CursorCommand) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errors.Closed(errors.PhaseInput, "command queue")
	}
	select {
	case q.ch <- cmd:
		return nil
	default:
		return errors.SendFailed(errors.PhaseInput, nil)
	}
}

// Drain applies all pending commands to the snapshot and returns how
// many were applied. Called by the thread that owns the display.
func (q *CommandQueue) Drain(s *Snapshot) int {
	n := 0
	for {
		select {
		case cmd := <-q.ch:
			switch cmd.Op {
			case CursorLock:
				s.cursorLocked = cmd.On
			case CursorHide:
				s.cursorHidden = cmd.On
			}
			n++
		default:
			return n
		}
	}
}

// Close stops accepting commands. Pending commands remain drainable.
func (q *CommandQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
