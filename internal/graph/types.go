// Package graph provides the transaction conflict graph and its cycle analysis.
package graph

// Node represents a transaction in the conflict graph.
type Node struct {
	Name string // Transaction label, e.g. "T1"
	Ops  int    // Number of operations the transaction issued
}

// Edge represents a directed conflict: an operation of From precedes a
// conflicting operation of To.
type Edge struct {
	From string
	To   string
}

// EdgeMeta records the first conflicting operation pair observed for an edge.
type EdgeMeta struct {
	Object    string // Object both operations touch
	FromIndex int    // Schedule position of the earlier operation
	ToIndex   int    // Schedule position of the later operation
	Kind      string // "R-W", "W-R" or "W-W"
}

// Graph is a directed graph of transactions. Edges are deduplicated: only the
// presence of a conflict direction matters, not how often it is observed.
type Graph struct {
	Nodes        map[string]*Node    // transaction -> node
	Children     map[string][]string // transaction -> successors (outgoing edges)
	Parents      map[string][]string // transaction -> predecessors (incoming edges)
	order        []string            // node insertion order, for deterministic iteration
	edgeMetadata map[Edge]*EdgeMeta  // Edge -> first observed conflict
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:        make(map[string]*Node),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		edgeMetadata: make(map[Edge]*EdgeMeta),
	}
}

// AddNode adds a transaction node to the graph.
// If node is nil, a new node with default values is created.
func (g *Graph) AddNode(name string, node *Node) {
	if node == nil {
		node = &Node{Name: name}
	}
	node.Name = name
	if _, exists := g.Nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.Nodes[name] = node
}

// AddEdge adds a from -> to edge. It returns false if the edge was already
// present, in which case the graph is unchanged.
func (g *Graph) AddEdge(from, to string) bool {
	if g.HasEdge(from, to) {
		return false
	}
	if !g.HasNode(from) {
		g.AddNode(from, nil)
	}
	if !g.HasNode(to) {
		g.AddNode(to, nil)
	}

	g.Children[from] = append(g.Children[from], to)
	g.Parents[to] = append(g.Parents[to], from)
	return true
}

// AddEdgeWithMeta adds an edge and records meta if the edge is new.
// Metadata of an existing edge is kept.
func (g *Graph) AddEdgeWithMeta(from, to string, meta EdgeMeta) {
	if g.AddEdge(from, to) {
		g.edgeMetadata[Edge{From: from, To: to}] = &meta
	}
}

// HasEdge reports whether the from -> to edge exists.
func (g *Graph) HasEdge(from, to string) bool {
	for _, child := range g.Children[from] {
		if child == to {
			return true
		}
	}
	return false
}

// GetChildren returns all direct successors of a node.
func (g *Graph) GetChildren(name string) []string {
	return g.Children[name]
}

// GetParents returns all direct predecessors of a node.
func (g *Graph) GetParents(name string) []string {
	return g.Parents[name]
}

// GetNode returns the node for a given name, or nil if not found.
func (g *Graph) GetNode(name string) *Node {
	return g.Nodes[name]
}

// GetEdgeMeta returns metadata for an edge, or nil if not found.
func (g *Graph) GetEdgeMeta(from, to string) *EdgeMeta {
	return g.edgeMetadata[Edge{From: from, To: to}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name string) bool {
	_, exists := g.Nodes[name]
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.Children {
		count += len(children)
	}
	return count
}

// AllNodes returns node names in insertion order.
func (g *Graph) AllNodes() []string {
	return append([]string(nil), g.order...)
}

// AllEdges returns all edges, grouped by source in node insertion order.
func (g *Graph) AllEdges() []Edge {
	var edges []Edge
	for _, from := range g.order {
		for _, to := range g.Children[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// InDegree returns the number of incoming edges for a node.
func (g *Graph) InDegree(name string) int {
	return len(g.Parents[name])
}

// OutDegree returns the number of outgoing edges for a node.
func (g *Graph) OutDegree(name string) int {
	return len(g.Children[name])
}
