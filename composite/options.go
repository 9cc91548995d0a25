package composite

// IteratorOption configures a TreeIterator at construction.
type IteratorOption func(*iteratorOptions)

type iteratorOptions struct {
	visitOnlyLeaves bool
	traverseSubTree bool
	skipEmptyNodes  bool
	reverse         bool
}

func defaultIteratorOptions() *iteratorOptions {
	return &iteratorOptions{
		visitOnlyLeaves: true,
		traverseSubTree: true,
	}
}

// WithVisitOnlyLeaves sets whether composite nodes are yielded (false) or only
// stepped into (true, the default).
func WithVisitOnlyLeaves(only bool) IteratorOption {
	return func(o *iteratorOptions) {
		o.visitOnlyLeaves = only
	}
}

// WithTraverseSubTree sets whether the iterator descends below the direct
// children of the root. Defaults to true.
func WithTraverseSubTree(traverse bool) IteratorOption {
	return func(o *iteratorOptions) {
		o.traverseSubTree = traverse
	}
}

// WithSkipEmptyNodes makes the iterator skip empty slots.
func WithSkipEmptyNodes() IteratorOption {
	return func(o *iteratorOptions) {
		o.skipEmptyNodes = true
	}
}

// WithReverse makes the iterator walk children last to first.
// Flat indices are not defined for reverse traversal.
func WithReverse() IteratorOption {
	return func(o *iteratorOptions) {
		o.reverse = true
	}
}
