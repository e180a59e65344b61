package search

// EngineOptions carries the tunable knobs named in spec.md §6. It is a
// plain struct with a constructor and functional setters, matching the
// teacher's Config/DefaultConfig() pattern rather than a flag-parsing
// library — there is no config-file format named anywhere in this engine's
// lineage.
type EngineOptions struct {
	threads                int
	cpuctValue             float32
	materialReductionBonus float32
	multiPV                int
	hashBytes              int
	treeBytes              int

	// DirichletEpsilon/DirichletAlpha implement the root-noise hook named
	// by spec.md §4.G/§9. Zero epsilon disables the feature entirely.
	dirichletEpsilon float32
	dirichletAlpha   float64
}

// DefaultOptions mirrors the teacher's DefaultConfig(): a single exploration
// constant, no root noise, a modest tree/hash budget suitable for tests.
func DefaultOptions() EngineOptions {
	return EngineOptions{
		threads:    1,
		cpuctValue: 1.0,
		multiPV:    1,
		hashBytes:  1 << 20,
		treeBytes:  1 << 22,
	}
}

func (o EngineOptions) Threads() int                 { return o.threads }
func (o EngineOptions) CPuctValue() float32           { return o.cpuctValue }
func (o EngineOptions) MaterialReductionBonus() float32 { return o.materialReductionBonus }
func (o EngineOptions) MultiPV() int                 { return o.multiPV }
func (o EngineOptions) HashBytes() int               { return o.hashBytes }
func (o EngineOptions) TreeBytes() int                { return o.treeBytes }
func (o EngineOptions) DirichletEpsilon() float32     { return o.dirichletEpsilon }
func (o EngineOptions) DirichletAlpha() float64       { return o.dirichletAlpha }

func (o EngineOptions) WithThreads(n int) EngineOptions {
	o.threads = n
	return o
}

func (o EngineOptions) WithCPuct(c float32) EngineOptions {
	o.cpuctValue = c
	return o
}

func (o EngineOptions) WithMaterialReductionBonus(b float32) EngineOptions {
	o.materialReductionBonus = b
	return o
}

func (o EngineOptions) WithMultiPV(k int) EngineOptions {
	o.multiPV = k
	return o
}

func (o EngineOptions) WithHashBytes(n int) EngineOptions {
	o.hashBytes = n
	return o
}

func (o EngineOptions) WithTreeBytes(n int) EngineOptions {
	o.treeBytes = n
	return o
}

func (o EngineOptions) WithDirichletNoise(epsilon float32, alpha float64) EngineOptions {
	o.dirichletEpsilon = epsilon
	o.dirichletAlpha = alpha
	return o
}
