package jsondelta

// DefaultMaxDepth bounds traversal and recursion depth when no option is
// given. It matches the nesting ceiling of common JSONB hosts.
const DefaultMaxDepth = 1000

// Option configures a single operation. The only recognized option is
// WithMaxDepth; the package has no process-wide settings.
type Option func(*depthGuard)

// WithMaxDepth overrides the traversal/recursion depth limit for one call.
// Limits below 1 are clamped to 1.
func WithMaxDepth(n int) Option {
	return func(g *depthGuard) {
		if n < 1 {
			n = 1
		}
		g.limit = n
	}
}

// depthGuard tracks the current descent depth of one public operation. A
// single guard is threaded through every recursive helper the operation
// touches, so composed operations (an array update merging at the end of a
// navigated path) count their nested recursion from the depth already
// consumed rather than from zero.
type depthGuard struct {
	limit int
	depth int
}

func newDepthGuard(opts []Option) *depthGuard {
	g := &depthGuard{limit: DefaultMaxDepth}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// enter records one level of descent, failing deterministically once the
// limit is passed. Recursive helpers pair it with leave on unwind.
func (g *depthGuard) enter() error {
	g.depth++
	if g.depth > g.limit {
		return &DepthExceededError{Limit: g.limit}
	}
	return nil
}

func (g *depthGuard) leave() { g.depth-- }

// descend accounts for n already-traversed segments at once, so an operation
// applied to a sub-value located by a prior walk recurses from the
// sub-value's true depth.
func (g *depthGuard) descend(n int) error {
	g.depth += n
	if g.depth > g.limit {
		return &DepthExceededError{Limit: g.limit}
	}
	return nil
}

func (g *depthGuard) ascend(n int) { g.depth -= n }
