package graph

import (
	"container/list"
	"fmt"
)

// Strategy selects the worklist discipline used to grow a component.
// Both strategies produce identical components; only the visiting order differs.
type Strategy int

const (
	// StrategyStack grows components depth-first from an explicit stack.
	StrategyStack Strategy = iota
	// StrategyQueue grows components breadth-first from a FIFO queue.
	StrategyQueue
)

func (s Strategy) String() string {
	switch s {
	case StrategyStack:
		return "stack"
	case StrategyQueue:
		return "queue"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "stack", "dfs", "":
		return StrategyStack, nil
	case "queue", "bfs":
		return StrategyQueue, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (must be 'stack' or 'queue')", name)
	}
}

// worklist holds discovered nodes whose links have not been expanded yet.
type worklist interface {
	Push(id NodeID)
	Pop() (NodeID, bool)
	Len() int
}

func newWorklist(s Strategy) worklist {
	if s == StrategyQueue {
		return newNodeQueue()
	}
	return &nodeStack{}
}

// nodeStack is a LIFO worklist backed by a slice.
type nodeStack struct {
	items []NodeID
}

func (s *nodeStack) Push(id NodeID) {
	s.items = append(s.items, id)
}

func (s *nodeStack) Pop() (NodeID, bool) {
	if len(s.items) == 0 {
		return NoNode, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

func (s *nodeStack) Len() int {
	return len(s.items)
}

// nodeQueue is a FIFO worklist backed by a linked list.
type nodeQueue struct {
	queue *list.List
}

func newNodeQueue() *nodeQueue {
	return &nodeQueue{queue: list.New()}
}

// Push adds a node to the back of the queue.
func (q *nodeQueue) Push(id NodeID) {
	q.queue.PushBack(id)
}

// Pop removes and returns the node at the front of the queue.
// Returns NoNode and false if the queue is empty.
func (q *nodeQueue) Pop() (NodeID, bool) {
	if q.queue.Len() == 0 {
		return NoNode, false
	}
	elem := q.queue.Front()
	q.queue.Remove(elem)
	return elem.Value.(NodeID), true
}

func (q *nodeQueue) Len() int {
	return q.queue.Len()
}
