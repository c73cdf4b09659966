// Package query evaluates Equals/Contains predicates against records through
// explicit per-kind field accessors.
package query

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownField is returned when a predicate names a key the accessor table
// does not expose.
var ErrUnknownField = errors.New("unknown field")

// Op is the predicate variant.
type Op int

const (
	OpEquals Op = iota + 1
	OpContains
)

func (o Op) String() string {
	switch o {
	case OpEquals:
		return "equals"
	case OpContains:
		return "contains"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Predicate selects records whose field Key relates to Value according to Op.
// A nil *Predicate matches every record.
type Predicate struct {
	Op    Op
	Key   string
	Value any
}

// Equals matches when the field value equals v.
func Equals(key string, v any) *Predicate {
	return &Predicate{Op: OpEquals, Key: key, Value: v}
}

// Contains matches when the field is a sequence holding v as an element.
func Contains(key string, v any) *Predicate {
	return &Predicate{Op: OpContains, Key: key, Value: v}
}

func (p *Predicate) String() string {
	if p == nil {
		return "<all>"
	}
	return fmt.Sprintf("%s %s %v", p.Key, p.Op, p.Value)
}

// Fields maps a field name to its getter. Getters return plain values:
// string, int, []string, or nil for an unset optional field.
type Fields[T any] map[string]func(*T) any

// Evaluate reports whether rec satisfies p.
func Evaluate[T any](fields Fields[T], rec *T, p *Predicate) (bool, error) {
	if p == nil {
		return true, nil
	}
	get, ok := fields[p.Key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownField, p.Key)
	}
	v := get(rec)

	switch p.Op {
	case OpEquals:
		return equal(v, p.Value), nil
	case OpContains:
		seq, ok := v.([]string)
		if !ok {
			return false, nil
		}
		s, ok := p.Value.(string)
		if !ok {
			return false, nil
		}
		return slices.Contains(seq, s), nil
	default:
		return false, fmt.Errorf("unsupported predicate operation %s", p.Op)
	}
}

// Filter returns the records satisfying p, preserving their order.
func Filter[T any](fields Fields[T], recs []T, p *Predicate) ([]T, error) {
	out := make([]T, 0, len(recs))
	for i := range recs {
		ok, err := Evaluate(fields, &recs[i], p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, recs[i])
		}
	}
	return out, nil
}

// equal compares a getter result with a caller-supplied value. Getter results
// are always comparable except string slices, which are compared element-wise.
func equal(a, b any) bool {
	if as, ok := a.([]string); ok {
		bs, ok := b.([]string)
		return ok && slices.Equal(as, bs)
	}
	if _, ok := b.([]string); ok {
		return false
	}
	return a == b
}
