package render

import "github.com/corvidlabs/rtrace/internal/scene"

// Options enumerates the render(scene,width,height,options) call's knobs
// from spec.md §6.
type Options struct {
	// MaxDepth is the reflection recursion budget. Pass UnsetMaxDepth to
	// request DefaultMaxDepth; MaxDepth 0 is itself meaningful (spec.md
	// §8: zero reflection recursion, i.e. the non-reflective shade
	// output) and Validate never overwrites it.
	MaxDepth     int
	AntiAliasing AAKind
	Samples      int // required for Stochastic; ignored otherwise (Quincunx is fixed at 5)
	Threads      int // 0 => hardware concurrency
	TileSize     int // 0 => DefaultTileSize
	Logger       Logger // nil => no advisory output
}

// DefaultMaxDepth and DefaultTileSize mirror spec.md §4.7/§6's defaults.
// UnsetMaxDepth is the sentinel Options.MaxDepth callers pass to request
// DefaultMaxDepth instead of an explicit depth; it is not a valid depth
// itself (depths are never negative).
const (
	DefaultMaxDepth = 10
	DefaultTileSize = 32
	UnsetMaxDepth   = -1
)

// Validate applies spec.md §7's IncompatibleOptions check and fills in
// zero-value defaults.
func (o *Options) Validate() error {
	if o.MaxDepth == UnsetMaxDepth {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.TileSize <= 0 {
		o.TileSize = DefaultTileSize
	}
	if o.AntiAliasing == AAStochastic && o.Samples < 1 {
		return &scene.IncompatibleOptionsError{Reason: "stochastic anti-aliasing requires samples >= 1"}
	}
	if o.AntiAliasing == AAQuincunx {
		o.Samples = len(quincunxOffsets)
	}
	if o.AntiAliasing == AANoJitter {
		o.Samples = 1
	}
	return nil
}
