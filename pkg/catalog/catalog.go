// Package catalog holds the static block definitions and wiring graph of a
// floorplanning problem. A Catalog fixes the canonical block order: gene i of
// every chromosome is the position of Block(i). Catalogs are immutable after
// New and safe to share across goroutines.
package catalog

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// MinBlocks is the smallest catalog that crossover can operate on
const MinBlocks = 2

// Catalog is the read-only block and connection reference data
type Catalog struct {
	blocks      []framework.Block
	index       map[string]int
	connections []framework.Connection
	links       []framework.Link
}

// New validates blocks and connections and builds a Catalog. Block order is
// preserved and becomes the chromosome order.
func New(blocks []framework.Block, connections []framework.Connection) (*Catalog, error) {
	if len(blocks) < MinBlocks {
		return nil, framework.NewConfigurationError("catalog needs at least %d blocks, got %d", MinBlocks, len(blocks))
	}

	c := &Catalog{
		blocks: make([]framework.Block, len(blocks)),
		index:  make(map[string]int, len(blocks)),
	}
	copy(c.blocks, blocks)

	for i, b := range c.blocks {
		if b.Name == "" {
			return nil, framework.NewConfigurationError("block %d has an empty name", i)
		}
		if _, dup := c.index[b.Name]; dup {
			return nil, framework.NewConfigurationError("duplicate block name %q", b.Name)
		}
		if b.Width <= 0 || b.Height <= 0 {
			return nil, framework.NewConfigurationError("block %q has non-positive dimensions %dx%d", b.Name, b.Width, b.Height)
		}
		c.index[b.Name] = i
	}

	seen := sets.New[framework.Link]()
	for _, conn := range connections {
		a, ok := c.index[conn.From]
		if !ok {
			return nil, framework.NewConfigurationError("connection references unknown block %q", conn.From)
		}
		b, ok := c.index[conn.To]
		if !ok {
			return nil, framework.NewConfigurationError("connection references unknown block %q", conn.To)
		}
		if a == b {
			return nil, framework.NewConfigurationError("block %q is connected to itself", conn.From)
		}
		key := framework.Link{A: min(a, b), B: max(a, b)}
		if seen.Has(key) {
			return nil, framework.NewConfigurationError("duplicate connection %s-%s", conn.From, conn.To)
		}
		seen.Insert(key)
		c.connections = append(c.connections, conn)
		c.links = append(c.links, framework.Link{A: a, B: b})
	}

	return c, nil
}

// Len returns the number of blocks, which is also the chromosome length
func (c *Catalog) Len() int {
	return len(c.blocks)
}

// Block returns the block at canonical index i
func (c *Catalog) Block(i int) framework.Block {
	return c.blocks[i]
}

// Blocks returns a copy of the blocks in canonical order
func (c *Catalog) Blocks() []framework.Block {
	out := make([]framework.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Names returns the block names in canonical order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		names[i] = b.Name
	}
	return names
}

// Index returns the canonical index of the named block
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Connections returns a copy of the wiring graph as declared
func (c *Catalog) Connections() []framework.Connection {
	out := make([]framework.Connection, len(c.connections))
	copy(out, c.connections)
	return out
}

// Links returns a copy of the wiring graph resolved to block indices
func (c *Catalog) Links() []framework.Link {
	out := make([]framework.Link, len(c.links))
	copy(out, c.links)
	return out
}

// FitsGrid returns a ConfigurationError if any block cannot be placed on a
// gridSize x gridSize grid.
func (c *Catalog) FitsGrid(gridSize int) error {
	if gridSize <= 0 {
		return framework.NewConfigurationError("grid size must be positive, got %d", gridSize)
	}
	for _, b := range c.blocks {
		if b.Width > gridSize || b.Height > gridSize {
			return framework.NewConfigurationError("block %q (%dx%d) does not fit a %dx%d grid",
				b.Name, b.Width, b.Height, gridSize, gridSize)
		}
	}
	return nil
}
