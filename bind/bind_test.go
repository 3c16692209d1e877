package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sig(t *testing.T, params ...Param) *Signature {
	t.Helper()
	s, err := NewSignature(params...)
	require.NoError(t, err)
	return s
}

func TestNewSignatureValidation(t *testing.T) {
	cases := []struct {
		name   string
		params []Param
	}{
		{"empty name", []Param{{Name: "", Kind: Positional}}},
		{"duplicate name", []Param{{Name: "a", Kind: Positional}, {Name: "a", Kind: KeywordOnly}}},
		{"positional after variadic", []Param{{Name: "rest", Kind: VariadicPositional}, {Name: "a", Kind: Positional}}},
		{"two variadic positionals", []Param{{Name: "r1", Kind: VariadicPositional}, {Name: "r2", Kind: VariadicPositional}}},
		{"two variadic keywords", []Param{{Name: "k1", Kind: VariadicKeyword}, {Name: "k2", Kind: VariadicKeyword}}},
		{"required after defaulted", []Param{{Name: "a", Kind: Positional, Default: 0, HasDefault: true}, {Name: "b", Kind: Positional}}},
		{"default on variadic", []Param{{Name: "rest", Kind: VariadicPositional, Default: 1, HasDefault: true}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSignature(tc.params...)
			assert.ErrorIs(t, err, ErrSignature)
		})
	}
}

func TestPackage(t *testing.T) {
	t.Run("exact positional", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "b", Kind: Positional},
			Param{Name: "c", Kind: Positional},
		)
		args, kwargs := s.Package([]any{0, 0, 1}, nil)
		assert.Equal(t, []any{0, 0, 1}, args)
		assert.Empty(t, kwargs)
	})

	t.Run("excess positional dropped", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "b", Kind: Positional},
			Param{Name: "c", Kind: Positional},
		)
		args, kwargs := s.Package([]any{0, 0, 1, 1}, nil)
		assert.Equal(t, []any{0, 0, 1}, args)
		assert.Empty(t, kwargs)
	})

	t.Run("excess positional kept by variadic", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "b", Kind: Positional},
			Param{Name: "rest", Kind: VariadicPositional},
		)
		args, kwargs := s.Package([]any{0, 0, 1, 1}, nil)
		assert.Equal(t, []any{0, 0, 1, 1}, args)
		assert.Empty(t, kwargs)
	})

	t.Run("missing positional filled from default", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "b", Kind: Positional, Default: 7, HasDefault: true},
		)
		args, kwargs := s.Package([]any{1}, nil)
		assert.Equal(t, []any{1}, args)
		assert.Equal(t, map[string]any{"b": 7}, kwargs)
	})

	t.Run("missing positional filled from keyword", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "b", Kind: Positional, Default: 7, HasDefault: true},
		)
		args, kwargs := s.Package([]any{1}, map[string]any{"b": 2})
		assert.Equal(t, []any{1}, args)
		assert.Equal(t, map[string]any{"b": 2}, kwargs)
	})

	t.Run("keyword only", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "k", Kind: KeywordOnly, Default: "dflt", HasDefault: true},
		)
		args, kwargs := s.Package([]any{1}, nil)
		assert.Equal(t, []any{1}, args)
		assert.Equal(t, map[string]any{"k": "dflt"}, kwargs)

		args, kwargs = s.Package([]any{1}, map[string]any{"k": "set", "junk": true})
		assert.Equal(t, []any{1}, args)
		assert.Equal(t, map[string]any{"k": "set"}, kwargs, "undeclared keywords are dropped")
	})

	t.Run("variadic keyword keeps the rest", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "extra", Kind: VariadicKeyword},
		)
		args, kwargs := s.Package([]any{1}, map[string]any{"x": 2, "y": 3})
		assert.Equal(t, []any{1}, args)
		assert.Equal(t, map[string]any{"x": 2, "y": 3}, kwargs)
	})
}

func TestDefine(t *testing.T) {
	t.Run("positional and defaults", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "b", Kind: Positional, Default: 5, HasDefault: true},
		)
		entry := s.Define([]any{1}, nil, false)
		assert.Equal(t, map[string]any{"a": 1, "b": 5}, entry)

		entry = s.Define([]any{1}, map[string]any{"b": 9}, false)
		assert.Equal(t, map[string]any{"a": 1, "b": 9}, entry)
	})

	t.Run("unrestricted keeps excess keywords", func(t *testing.T) {
		s := sig(t, Param{Name: "a", Kind: Positional})
		entry := s.Define([]any{1}, map[string]any{"stray": true}, false)
		assert.Equal(t, map[string]any{"a": 1, "stray": true}, entry)
	})

	t.Run("unrestricted collects excess positionals under the variadic name", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "rest", Kind: VariadicPositional},
		)
		entry := s.Define([]any{1, 2, 3}, nil, false)
		assert.Equal(t, map[string]any{"a": 1, "rest": []any{2, 3}}, entry)
	})

	t.Run("restricted keeps declared parameters only", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "k", Kind: KeywordOnly, Default: 0, HasDefault: true},
		)
		entry := s.Define([]any{1, 99}, map[string]any{"k": 2, "stray": true}, true)
		assert.Equal(t, map[string]any{"a": 1, "k": 2}, entry)
	})

	t.Run("restricted routes excess keywords to the variadic keyword", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "extra", Kind: VariadicKeyword},
		)
		entry := s.Define([]any{1}, map[string]any{"x": 2}, true)
		assert.Equal(t, map[string]any{"a": 1, "extra": map[string]any{"x": 2}}, entry)
	})

	t.Run("caller containers are not mutated", func(t *testing.T) {
		s := sig(t,
			Param{Name: "a", Kind: Positional},
			Param{Name: "extra", Kind: VariadicKeyword},
		)
		kwargs := map[string]any{"a": 1, "x": 2}
		s.Define(nil, kwargs, true)
		s.Package(nil, kwargs)
		assert.Equal(t, map[string]any{"a": 1, "x": 2}, kwargs)
	})
}
