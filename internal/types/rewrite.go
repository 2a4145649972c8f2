package types

// RewriteFailure records a single source file the rewriter could not
// convert. Failures never abort the rest of the pass.
type RewriteFailure struct {
	File   string
	Reason string
}

// RewriteReport summarizes one rewrite pass over a package directory.
type RewriteReport struct {
	Written []string
	Failed  []RewriteFailure
}
