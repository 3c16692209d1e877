package query

import (
	"errors"
	"fmt"

	"github.com/agentic-research/querytree/bind"
)

// Discovery selects how a Guard resolves its query when it is built.
type Discovery string

const (
	// DiscoverGet resolves the label as an exact path; an unresolvable
	// label leaves the guard without a query (see GuardConfig.MissOK).
	DiscoverGet Discovery = "get"
	// DiscoverSearch resolves the label via tree search.
	DiscoverSearch Discovery = "search"
)

// GuardConfig controls how a Guard resolves its query and what it does when
// the record does not satisfy it.
type GuardConfig struct {
	// Label of the query to evaluate. Empty means the root.
	Label string
	// Discovery mode; DiscoverGet when empty.
	Discovery Discovery
	// Strategy and Begin apply to DiscoverSearch; DepthFirst when empty.
	Strategy Strategy
	Begin    string
	// Inverse runs the function when the match fails and withholds it when
	// it succeeds.
	Inverse bool
	// MissOK runs the function when the label resolved to no query at all.
	MissOK bool
	// Fallback is returned by Call when the guard withholds the function.
	Fallback any
}

// Func is a callable guarded by a query: positional arguments plus keyword
// arguments, one result.
type Func func(args []any, kwargs map[string]any) any

// Guard conditionally executes functions: each call binds the arguments to
// a flat record, evaluates the guard's query against it, and either invokes
// the function with the reduced arguments or returns the configured
// fallback. The query is resolved once, when the guard is built.
type Guard struct {
	sig  *bind.Signature
	node *Node
	cfg  GuardConfig
}

// NewGuard resolves the configured query against the tree and returns a
// guard for callables with the given signature.
func NewGuard(t *Tree, sig *bind.Signature, cfg GuardConfig) (*Guard, error) {
	if sig == nil {
		return nil, fmt.Errorf("guard: nil signature")
	}
	g := &Guard{sig: sig, cfg: cfg}
	switch cfg.Discovery {
	case DiscoverGet, "":
		node, err := t.Get(cfg.Label)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		g.node = node
	case DiscoverSearch:
		strategy := cfg.Strategy
		if strategy == "" {
			strategy = DepthFirst
		}
		node, err := t.Search(cfg.Label, nil, strategy, cfg.Begin)
		if err != nil {
			return nil, err
		}
		g.node = node
	default:
		return nil, fmt.Errorf("guard: discovery %q is not supported, try %q or %q",
			cfg.Discovery, DiscoverGet, DiscoverSearch)
	}
	return g, nil
}

// Call binds the arguments, consults the query and either runs fn with the
// reduced arguments or returns the configured fallback. Evaluator errors
// propagate unchanged.
func (g *Guard) Call(fn Func, args []any, kwargs map[string]any) (any, error) {
	entry := g.sig.Define(args, kwargs, false)
	run := g.cfg.MissOK
	if g.node != nil {
		ok, err := g.node.Match(entry)
		if err != nil {
			return nil, err
		}
		run = ok != g.cfg.Inverse
	}
	if !run {
		return g.cfg.Fallback, nil
	}
	callArgs, callKw := g.sig.Package(args, kwargs)
	return fn(callArgs, callKw), nil
}
