package game

import "fmt"

// Connectivity is a disjoint-set forest over cell ids. Components only ever merge.
type Connectivity struct {
	parent []int
	size   []int
}

func NewConnectivity(n int) *Connectivity {
	c := &Connectivity{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range c.parent {
		c.parent[i] = i
		c.size[i] = 1
	}
	return c
}

func (c *Connectivity) Len() int {
	return len(c.parent)
}

// Find returns the representative of the component containing x.
func (c *Connectivity) Find(x int) int {
	c.check(x)
	for c.parent[x] != x {
		// Path halving.
		c.parent[x] = c.parent[c.parent[x]]
		x = c.parent[x]
	}
	return x
}

// Union merges the components of a and b and reports whether they were distinct.
func (c *Connectivity) Union(a, b int) bool {
	ra, rb := c.Find(a), c.Find(b)
	if ra == rb {
		return false
	}
	if c.size[ra] < c.size[rb] {
		ra, rb = rb, ra
	}
	c.parent[rb] = ra
	c.size[ra] += c.size[rb]
	return true
}

func (c *Connectivity) Same(a, b int) bool {
	return c.Find(a) == c.Find(b)
}

// Size returns the number of cells in the component containing x.
func (c *Connectivity) Size(x int) int {
	return c.size[c.Find(x)]
}

func (c *Connectivity) check(x int) {
	if x < 0 || x >= len(c.parent) {
		panic(fmt.Sprintf("connectivity: element %d out of range [0, %d)", x, len(c.parent)))
	}
}
