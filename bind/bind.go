// Package bind reconciles positional and keyword arguments against a
// callable's declared parameter list. Go has no runtime signature
// introspection, so callers describe their parameters explicitly; the
// binder then produces the flat name-to-value record used for query
// matching, and the reduced argument pair used to perform the real call.
package bind

import (
	"errors"
	"fmt"
)

// Kind classifies a declared parameter.
type Kind int

const (
	// Positional parameters bind left to right and may carry defaults.
	Positional Kind = iota
	// VariadicPositional collects excess positional arguments. At most one,
	// after all positionals.
	VariadicPositional
	// KeywordOnly parameters bind by name only.
	KeywordOnly
	// VariadicKeyword collects excess keyword arguments. At most one, last.
	VariadicKeyword
)

// ErrSignature reports an invalid parameter declaration.
var ErrSignature = errors.New("invalid signature")

// Param describes one declared parameter. HasDefault distinguishes "default
// is nil" from "no default declared".
type Param struct {
	Name       string
	Kind       Kind
	Default    any
	HasDefault bool
}

// Signature is a validated parameter declaration. Positionals and
// keyword-only parameters keep their declaration order; the variadic
// collectors are referenced by name.
type Signature struct {
	positional []Param
	varArgs    string
	keywords   []Param
	varKw      string
}

// NewSignature validates a parameter declaration: unique non-empty names,
// kinds in declaration order (positional, variadic positional, keyword-only,
// variadic keyword), required positionals before defaulted ones, no defaults
// on variadics.
func NewSignature(params ...Param) (*Signature, error) {
	s := &Signature{}
	seen := make(map[string]struct{}, len(params))
	stage := Positional
	defaulted := false
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: empty parameter name", ErrSignature)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrSignature, p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Kind < stage {
			return nil, fmt.Errorf("%w: parameter %q out of order", ErrSignature, p.Name)
		}
		stage = p.Kind
		switch p.Kind {
		case Positional:
			if p.HasDefault {
				defaulted = true
			} else if defaulted {
				return nil, fmt.Errorf("%w: required parameter %q follows a defaulted one", ErrSignature, p.Name)
			}
			s.positional = append(s.positional, p)
		case VariadicPositional:
			if s.varArgs != "" {
				return nil, fmt.Errorf("%w: second variadic positional %q", ErrSignature, p.Name)
			}
			if p.HasDefault {
				return nil, fmt.Errorf("%w: variadic %q cannot have a default", ErrSignature, p.Name)
			}
			s.varArgs = p.Name
		case KeywordOnly:
			s.keywords = append(s.keywords, p)
		case VariadicKeyword:
			if s.varKw != "" {
				return nil, fmt.Errorf("%w: second variadic keyword %q", ErrSignature, p.Name)
			}
			if p.HasDefault {
				return nil, fmt.Errorf("%w: variadic %q cannot have a default", ErrSignature, p.Name)
			}
			s.varKw = p.Name
		default:
			return nil, fmt.Errorf("%w: unknown kind %d for %q", ErrSignature, p.Kind, p.Name)
		}
	}
	return s, nil
}

// Define associates the call's arguments with the declared parameter names,
// producing the flat record a query evaluates. In unrestricted mode every
// passed keyword appears in the record, declared or not, and excess
// positionals land under the variadic positional name when one is declared.
// Restricted mode keeps only declared parameters; excess keywords land under
// the variadic keyword name when one is declared and are dropped otherwise.
// The caller's argument containers are never mutated.
func (s *Signature) Define(args []any, kwargs map[string]any, restricted bool) map[string]any {
	if restricted {
		return s.defineRestricted(args, kwargs)
	}
	entry := make(map[string]any, len(s.positional)+len(s.keywords)+len(kwargs))
	for i, p := range s.positional {
		switch {
		case i < len(args):
			entry[p.Name] = args[i]
		default:
			if v, ok := kwargs[p.Name]; ok {
				entry[p.Name] = v
			} else {
				entry[p.Name] = p.Default
			}
		}
	}
	if s.varArgs != "" {
		entry[s.varArgs] = excess(args, len(s.positional))
	}
	for _, p := range s.keywords {
		entry[p.Name] = p.Default
	}
	for k, v := range kwargs {
		entry[k] = v
	}
	return entry
}

func (s *Signature) defineRestricted(args []any, kwargs map[string]any) map[string]any {
	entry := make(map[string]any, len(s.positional)+len(s.keywords))
	rest := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		rest[k] = v
	}
	for i, p := range s.positional {
		if i < len(args) {
			entry[p.Name] = args[i]
			continue
		}
		entry[p.Name] = pop(rest, p.Name, p.Default)
	}
	for _, p := range s.keywords {
		entry[p.Name] = pop(rest, p.Name, p.Default)
	}
	if s.varArgs != "" {
		entry[s.varArgs] = excess(args, len(s.positional))
	}
	if s.varKw != "" {
		entry[s.varKw] = rest
	}
	return entry
}

// Package reduces the call to the arguments the callable actually declares:
// excess positionals are dropped unless a variadic positional exists, missing
// positionals are filled by keyword or default, and excess keywords are
// dropped unless a variadic keyword exists.
func (s *Signature) Package(args []any, kwargs map[string]any) ([]any, map[string]any) {
	n := len(args)
	if n > len(s.positional) && s.varArgs == "" {
		n = len(s.positional)
	}
	outArgs := make([]any, n)
	copy(outArgs, args[:n])

	rest := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		rest[k] = v
	}
	outKw := make(map[string]any)
	start := n
	if start > len(s.positional) {
		start = len(s.positional)
	}
	for _, p := range s.positional[start:] {
		outKw[p.Name] = pop(rest, p.Name, p.Default)
	}
	for _, p := range s.keywords {
		outKw[p.Name] = pop(rest, p.Name, p.Default)
	}
	if s.varKw != "" {
		for k, v := range rest {
			outKw[k] = v
		}
	}
	return outArgs, outKw
}

func excess(args []any, from int) []any {
	if from >= len(args) {
		return []any{}
	}
	out := make([]any, len(args)-from)
	copy(out, args[from:])
	return out
}

func pop(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok {
		delete(m, key)
		return v
	}
	return fallback
}
