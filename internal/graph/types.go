// Package graph provides the sparse pixel graph and connected-component analysis for blobscan.
package graph

import "fmt"

// NodeID addresses a node in the graph arena.
type NodeID int32

// NoNode marks an absent link or an empty enumeration chain.
const NoNode NodeID = -1

// Coord identifies a cell in the source matrix.
type Coord struct {
	Row int
	Col int
}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction selects one of the four axis-aligned neighbor links.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// directions lists every Direction in link order.
var directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction pointing back along the same link.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// offset returns the (row, col) delta of the neighbor in direction d.
func (d Direction) offset() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Node represents one foreground pixel.
type Node struct {
	Pos   Coord
	Links [4]NodeID // indexed by Direction; NoNode when out of bounds or background
	Next  NodeID    // row-major enumeration successor
}

// Neighbor returns the node linked in direction d, or NoNode.
func (n *Node) Neighbor(d Direction) NodeID {
	return n.Links[d]
}

// IsBoundary reports whether at least one neighbor link is absent.
func (n *Node) IsBoundary() bool {
	for _, l := range n.Links {
		if l == NoNode {
			return true
		}
	}
	return false
}

// Graph is the immutable node-per-foreground-pixel graph produced by Build.
type Graph struct {
	rows  int
	cols  int
	nodes []Node   // arena, in creation (row-major) order
	index []NodeID // rows*cols lookup table
	head  NodeID
}

// Rows returns the source matrix height.
func (g *Graph) Rows() int {
	return g.rows
}

// Cols returns the source matrix width.
func (g *Graph) Cols() int {
	return g.cols
}

// Len returns the number of nodes (foreground pixels).
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Empty returns true if the graph has no nodes.
func (g *Graph) Empty() bool {
	return g.head == NoNode
}

// Head returns the first node in row-major enumeration order, or NoNode.
func (g *Graph) Head() NodeID {
	return g.head
}

// Node returns the node with the given id. It panics on an out-of-range id.
func (g *Graph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// At returns the node at (row, col), or NoNode if the cell is background or out of bounds.
func (g *Graph) At(row, col int) NodeID {
	if !g.inBounds(row, col) {
		return NoNode
	}
	return g.index[row*g.cols+col]
}

// Links returns the number of undirected neighbor links in the graph.
func (g *Graph) Links() int {
	count := 0
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Links[Down] != NoNode {
			count++
		}
		if n.Links[Right] != NoNode {
			count++
		}
	}
	return count
}

// Validate checks that every neighbor link is reciprocated.
func (g *Graph) Validate() error {
	for i := range g.nodes {
		id := NodeID(i)
		for _, d := range directions {
			nb := g.nodes[i].Links[d]
			if nb == NoNode {
				continue
			}
			if back := g.nodes[nb].Links[d.Opposite()]; back != id {
				return &LinkError{From: g.nodes[i].Pos, To: g.nodes[nb].Pos, Dir: d}
			}
		}
	}
	return nil
}

func (g *Graph) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// LinkError describes a neighbor link that is not mirrored by its target.
type LinkError struct {
	From Coord
	To   Coord
	Dir  Direction
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("asymmetric link: %s -%s-> %s has no %s link back",
		e.From, e.Dir, e.To, e.Dir.Opposite())
}
