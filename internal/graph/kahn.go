package graph

import (
	"container/list"
	"errors"
	"fmt"
	"strings"
)

// ProcessingQueue wraps a list-based queue for Kahn's algorithm processing.
// It holds nodes that are ready to be processed (have in-degree of 0).
type ProcessingQueue struct {
	queue *list.List
}

// NewProcessingQueue creates a new empty processing queue.
func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{
		queue: list.New(),
	}
}

// InitializeQueue creates a processing queue populated with all nodes that
// have in-degree of 0, in node insertion order.
func (g *Graph) InitializeQueue(inDegree map[string]int) *ProcessingQueue {
	pq := NewProcessingQueue()
	for _, name := range g.order {
		if inDegree[name] == 0 {
			pq.Enqueue(name)
		}
	}
	return pq
}

// Enqueue adds a node to the back of the queue.
func (pq *ProcessingQueue) Enqueue(node string) {
	pq.queue.PushBack(node)
}

// Dequeue removes and returns the node at the front of the queue.
// Returns empty string and false if queue is empty.
func (pq *ProcessingQueue) Dequeue() (string, bool) {
	if pq.queue.Len() == 0 {
		return "", false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(string), true
}

// Len returns the number of nodes in the queue.
func (pq *ProcessingQueue) Len() int {
	return pq.queue.Len()
}

// IsEmpty returns true if the queue has no nodes.
func (pq *ProcessingQueue) IsEmpty() bool {
	return pq.queue.Len() == 0
}

// CalculateInDegrees computes the number of incoming edges for each node.
func (g *Graph) CalculateInDegrees() map[string]int {
	inDegree := make(map[string]int, len(g.Nodes))
	for name := range g.Nodes {
		inDegree[name] = 0
	}
	for _, children := range g.Children {
		for _, child := range children {
			inDegree[child]++
		}
	}
	return inDegree
}

// ErrCycleDetected is returned when the conflict graph contains a cycle,
// so no serial order of the transactions is conflict-equivalent.
var ErrCycleDetected = errors.New("cycle detected in conflict graph")

// CycleInfo describes the nodes Kahn's algorithm could not process.
type CycleInfo struct {
	TotalNodes       int      // Total number of nodes in the graph
	ProcessedNodes   int      // Number of nodes successfully processed
	UnprocessedNodes []string // Nodes on or behind a cycle
	CyclePath        []string // Ordered path showing the cycle (e.g., [T1, T2, T1])
}

// CycleError wraps ErrCycleDetected with the cycle details.
type CycleError struct {
	Info *CycleInfo
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("%s: %d of %d transactions could not be ordered",
		ErrCycleDetected, len(e.Info.UnprocessedNodes), e.Info.TotalNodes)
	if len(e.Info.CyclePath) > 0 {
		msg += fmt.Sprintf(" (cycle: %s)", strings.Join(e.Info.CyclePath, " -> "))
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrCycleDetected).
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// DetectIncompleteProcessing runs Kahn's algorithm and returns information
// about nodes that could not be processed, or nil if the graph is acyclic.
func (g *Graph) DetectIncompleteProcessing() *CycleInfo {
	processed := g.kahn()
	if len(processed) == len(g.Nodes) {
		return nil
	}

	done := make(map[string]bool, len(processed))
	for _, n := range processed {
		done[n] = true
	}

	var unprocessed []string
	unprocessedSet := make(map[string]bool)
	for _, name := range g.order {
		if !done[name] {
			unprocessed = append(unprocessed, name)
			unprocessedSet[name] = true
		}
	}

	var cyclePath []string
	for _, name := range unprocessed {
		if cyclePath = g.FindCyclePath(name, unprocessedSet); cyclePath != nil {
			break
		}
	}

	return &CycleInfo{
		TotalNodes:       len(g.Nodes),
		ProcessedNodes:   len(processed),
		UnprocessedNodes: unprocessed,
		CyclePath:        cyclePath,
	}
}

// HasCycle returns true if the graph contains a cycle.
func (g *Graph) HasCycle() bool {
	return g.DetectIncompleteProcessing() != nil
}

// FindCyclePath finds a cycle through start using only allowedNodes.
// Returns the ordered path with start at both ends, or nil if none exists.
func (g *Graph) FindCyclePath(start string, allowedNodes map[string]bool) []string {
	visited := make(map[string]bool)
	path := []string{start}

	if g.dfsFindPath(start, start, visited, allowedNodes, &path) {
		return path
	}
	return nil
}

// dfsFindPath performs DFS to find a path back to the target node.
func (g *Graph) dfsFindPath(current, target string, visited, allowedNodes map[string]bool, path *[]string) bool {
	for _, child := range g.GetChildren(current) {
		if !allowedNodes[child] {
			continue
		}
		if child == target {
			*path = append(*path, target)
			return true
		}
		if visited[child] {
			continue
		}

		visited[child] = true
		*path = append(*path, child)
		if g.dfsFindPath(child, target, visited, allowedNodes, path) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

// kahn returns the nodes it could process, in topological order.
func (g *Graph) kahn() []string {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	var result []string
	for !queue.IsEmpty() {
		node, _ := queue.Dequeue()
		result = append(result, node)

		for _, child := range g.GetChildren(node) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue.Enqueue(child)
			}
		}
	}
	return result
}

// TopologicalSort returns the nodes in an order that respects every edge.
// Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	order := g.kahn()
	if len(order) != len(g.Nodes) {
		return nil, &CycleError{Info: g.DetectIncompleteProcessing()}
	}
	return order, nil
}

// SerialOrder returns the order in which the transactions would have to run
// serially to be conflict-equivalent to the schedule the graph was built from.
func (g *Graph) SerialOrder() ([]string, error) {
	return g.TopologicalSort()
}

// Validate returns a *CycleError if the graph contains a cycle.
func (g *Graph) Validate() error {
	if info := g.DetectIncompleteProcessing(); info != nil {
		return &CycleError{Info: info}
	}
	return nil
}
