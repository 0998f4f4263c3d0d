package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidShape is returned when the input matrix is empty or jagged.
var ErrInvalidShape = errors.New("invalid matrix shape")

// ShapeError carries details about a rejected matrix. It matches ErrInvalidShape via errors.Is.
type ShapeError struct {
	Row    int // offending row, or -1 when the matrix has no rows
	Width  int // expected row length
	Length int // actual row length
}

func (e *ShapeError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("%v: matrix has no rows", ErrInvalidShape)
	case e.Width == 0:
		return fmt.Sprintf("%v: matrix has no columns", ErrInvalidShape)
	default:
		return fmt.Sprintf("%v: row %d has %d columns, expected %d", ErrInvalidShape, e.Row, e.Length, e.Width)
	}
}

// Unwrap lets errors.Is match ErrInvalidShape.
func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}

// Builder constructs a pixel graph from a binary matrix.
type Builder struct {
	matrix [][]uint8
}

// NewBuilder creates a new graph builder for the given matrix.
func NewBuilder(matrix [][]uint8) *Builder {
	return &Builder{matrix: matrix}
}

// Build validates the matrix shape and constructs the graph.
// Any nonzero cell is foreground.
func (b *Builder) Build() (*Graph, error) {
	rows, cols, err := checkShape(b.matrix)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		rows:  rows,
		cols:  cols,
		index: make([]NodeID, rows*cols),
		head:  NoNode,
	}

	b.createNodes(g)
	b.wireLinks(g)

	return g, nil
}

// checkShape rejects empty and jagged matrices before anything is allocated.
func checkShape(matrix [][]uint8) (int, int, error) {
	if len(matrix) == 0 {
		return 0, 0, &ShapeError{Row: -1}
	}
	cols := len(matrix[0])
	if cols == 0 {
		return 0, 0, &ShapeError{Row: 0}
	}
	for i, row := range matrix {
		if len(row) != cols {
			return 0, 0, &ShapeError{Row: i, Width: cols, Length: len(row)}
		}
	}
	return len(matrix), cols, nil
}

// createNodes allocates one node per foreground cell in row-major order and
// threads them onto the enumeration chain.
func (b *Builder) createNodes(g *Graph) {
	tail := NoNode
	for r, row := range b.matrix {
		for c, v := range row {
			slot := r*g.cols + c
			if v == 0 {
				g.index[slot] = NoNode
				continue
			}

			id := NodeID(len(g.nodes))
			g.nodes = append(g.nodes, Node{
				Pos:   Coord{Row: r, Col: c},
				Links: [4]NodeID{NoNode, NoNode, NoNode, NoNode},
				Next:  NoNode,
			})
			g.index[slot] = id

			if tail == NoNode {
				g.head = id
			} else {
				g.nodes[tail].Next = id
			}
			tail = id
		}
	}
}

// wireLinks resolves the four neighbor links of every node through the lookup
// table. It runs after createNodes because a neighbor may not exist yet when a
// node is first created.
func (b *Builder) wireLinks(g *Graph) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			id := g.index[r*g.cols+c]
			if id == NoNode {
				continue
			}
			n := &g.nodes[id]
			for _, d := range directions {
				dr, dc := d.offset()
				n.Links[d] = g.At(r+dr, c+dc)
			}
		}
	}
}

// Build is a convenience function that builds a graph directly from a matrix.
func Build(matrix [][]uint8) (*Graph, error) {
	return NewBuilder(matrix).Build()
}
