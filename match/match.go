// Package match evaluates MongoDB-style condition documents against flat
// records. It is the predicate engine behind query classification: the
// query tree hands it effective definitions verbatim and never interprets
// operator semantics itself.
//
// Supported grammar: plain equality plus $eq, $ne, $gt, $gte, $lt, $lte,
// $in, $nin, $not, $and, $or, $nor, $exists, $size, $all and $regex.
// A comparison against a field missing from the record is a non-match, not
// an error; $ne and $not match on absence, as in MongoDB.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentic-research/querytree/document"
)

// Matcher evaluates a single condition document. It holds the definition by
// reference and performs no validation up front: unsupported operators
// surface as errors at match time, never at construction.
type Matcher struct {
	def any
}

// New wraps a condition document. The definition may be an ordered document,
// a plain map, or any nesting of the two.
func New(def any) *Matcher {
	return &Matcher{def: def}
}

// Match reports whether the record satisfies the condition document.
func (m *Matcher) Match(record map[string]any) (bool, error) {
	return matchDoc(m.def, record)
}

// matchDoc evaluates a full condition document (field conditions plus
// top-level logical operators) against a record. All entries must hold.
func matchDoc(def any, record map[string]any) (bool, error) {
	pairs, ok := pairsOf(def)
	if !ok {
		return false, fmt.Errorf("condition document is %T, want object", def)
	}
	for _, p := range pairs {
		var (
			ok  bool
			err error
		)
		if strings.HasPrefix(p.key, "$") {
			ok, err = matchLogical(p.key, p.value, record)
		} else {
			v, present := record[p.key]
			ok, err = matchCond(p.value, v, present)
		}
		if err != nil {
			return false, fmt.Errorf("field %q: %w", p.key, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matchLogical handles the top-level combinators $and, $or and $nor, each of
// which takes a list of sub-documents.
func matchLogical(op string, operand any, record map[string]any) (bool, error) {
	subs, ok := operand.([]any)
	if !ok {
		return false, fmt.Errorf("operator %s wants a list of documents, got %T", op, operand)
	}
	switch op {
	case "$and":
		for _, sub := range subs {
			ok, err := matchDoc(sub, record)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case "$or", "$nor":
		for _, sub := range subs {
			ok, err := matchDoc(sub, record)
			if err != nil {
				return false, err
			}
			if ok {
				return op == "$or", nil
			}
		}
		return op == "$nor", nil
	default:
		return false, fmt.Errorf("unsupported operator %q", op)
	}
}

// matchCond evaluates one field condition: either an operator document or a
// literal compared for deep equality. present tells whether the record
// carries the field at all.
func matchCond(cond, v any, present bool) (bool, error) {
	pairs, isMap := pairsOf(cond)
	if isMap && isOperatorDoc(pairs) {
		for _, p := range pairs {
			ok, err := matchOp(p.key, p.value, v, present)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
	// Literal (including exact sub-document) equality.
	return present && document.Equal(cond, v), nil
}

func matchOp(op string, operand, v any, present bool) (bool, error) {
	switch op {
	case "$eq":
		return present && document.Equal(operand, v), nil
	case "$ne":
		return !present || !document.Equal(operand, v), nil
	case "$gt", "$gte", "$lt", "$lte":
		if !present {
			return false, nil
		}
		c, comparable := compare(v, operand)
		if !comparable {
			return false, nil
		}
		switch op {
		case "$gt":
			return c > 0, nil
		case "$gte":
			return c >= 0, nil
		case "$lt":
			return c < 0, nil
		default:
			return c <= 0, nil
		}
	case "$in", "$nin":
		list, ok := operand.([]any)
		if !ok {
			return false, fmt.Errorf("operator %s wants a list, got %T", op, operand)
		}
		found := present && contains(list, v)
		if op == "$in" {
			return found, nil
		}
		return !found, nil
	case "$not":
		// $not accepts an operator document or a bare literal (negated
		// equality), matching on absent fields either way.
		ok, err := matchCond(operand, v, present)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case "$exists":
		want, ok := operand.(bool)
		if !ok {
			return false, fmt.Errorf("operator $exists wants a bool, got %T", operand)
		}
		return present == want, nil
	case "$size":
		n, ok := document.Number(operand)
		if !ok {
			return false, fmt.Errorf("operator $size wants a number, got %T", operand)
		}
		list, isList := v.([]any)
		return present && isList && float64(len(list)) == n, nil
	case "$all":
		want, ok := operand.([]any)
		if !ok {
			return false, fmt.Errorf("operator $all wants a list, got %T", operand)
		}
		list, isList := v.([]any)
		if !present || !isList {
			return false, nil
		}
		for _, w := range want {
			if !contains(list, w) {
				return false, nil
			}
		}
		return true, nil
	case "$regex":
		pattern, ok := operand.(string)
		if !ok {
			return false, fmt.Errorf("operator $regex wants a string, got %T", operand)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("operator $regex: %w", err)
		}
		s, isStr := v.(string)
		return present && isStr && re.MatchString(s), nil
	default:
		return false, fmt.Errorf("unsupported operator %q", op)
	}
}

// compare orders two values when they share a comparable type (numbers or
// strings). The second return is false for incomparable pairs.
func compare(a, b any) (int, bool) {
	if af, ok := document.Number(a); ok {
		bf, ok := document.Number(b)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func contains(list []any, v any) bool {
	for _, item := range list {
		if document.Equal(item, v) {
			return true
		}
	}
	return false
}

type pair struct {
	key   string
	value any
}

// pairsOf flattens either map flavor into ordered key/value pairs. Ordered
// documents keep their insertion order; plain maps carry whatever order the
// runtime gives, which does not affect the boolean result.
func pairsOf(v any) ([]pair, bool) {
	switch t := v.(type) {
	case *document.Map:
		out := make([]pair, 0, t.Len())
		for p := t.Oldest(); p != nil; p = p.Next() {
			out = append(out, pair{p.Key, p.Value})
		}
		return out, true
	case map[string]any:
		out := make([]pair, 0, len(t))
		for k, val := range t {
			out = append(out, pair{k, val})
		}
		return out, true
	default:
		return nil, false
	}
}

// isOperatorDoc reports whether a mapping is an operator document. A mapping
// with any $-prefixed key is treated as one; mixing operators with plain
// field names inside a single condition is rejected at match time.
func isOperatorDoc(pairs []pair) bool {
	if len(pairs) == 0 {
		return false
	}
	for _, p := range pairs {
		if strings.HasPrefix(p.key, "$") {
			return true
		}
	}
	return false
}
