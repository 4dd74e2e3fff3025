package catalog

import "github.com/vlsi-lab/floorplanner/pkg/framework"

// Processor block names
const (
	ALU          = "ALU"
	Cache        = "Cache"
	ControlUnit  = "Control Unit"
	RegisterFile = "Register File"
	Decoder      = "Decoder"
	FloatingUnit = "Floating Unit"
)

// ProcessorBlocks returns the sub-units of the reference processor
func ProcessorBlocks() []framework.Block {
	return []framework.Block{
		{Name: ALU, Width: 5, Height: 5},
		{Name: Cache, Width: 7, Height: 4},
		{Name: ControlUnit, Width: 4, Height: 4},
		{Name: RegisterFile, Width: 6, Height: 6},
		{Name: Decoder, Width: 5, Height: 3},
		{Name: FloatingUnit, Width: 5, Height: 5},
	}
}

// ProcessorConnections returns the wiring graph of the reference processor
func ProcessorConnections() []framework.Connection {
	return []framework.Connection{
		{From: RegisterFile, To: ALU},
		{From: ControlUnit, To: ALU},
		{From: ALU, To: Cache},
		{From: RegisterFile, To: FloatingUnit},
		{From: Cache, To: Decoder},
		{From: Decoder, To: FloatingUnit},
	}
}

// Processor returns the reference processor catalog
func Processor() *Catalog {
	c, err := New(ProcessorBlocks(), ProcessorConnections())
	if err != nil {
		// static data, only reachable by editing the tables above
		panic(err)
	}
	return c
}
