// Package condition turns numeric climate variables into the boolean event
// arrays the run-length engine consumes. Inputs are assumed to be already
// converted to the threshold's unit; no unit handling happens here. NaN
// never satisfies any comparison and contributes zero exceedance magnitude,
// so missing steps break runs rather than extending them.
package condition

import (
	"fmt"
	"math"

	"github.com/arloliu/climrun/field"
)

// Op is a comparison operator.
type Op uint8

const (
	Gt Op = 0x1 // Gt is strictly greater than.
	Ge Op = 0x2 // Ge is greater than or equal.
	Lt Op = 0x3 // Lt is strictly less than.
	Le Op = 0x4 // Le is less than or equal.
	Eq Op = 0x5 // Eq is equal.
	Ne Op = 0x6 // Ne is not equal.
)

func (op Op) String() string {
	switch op {
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Eq:
		return "=="
	case Ne:
		return "!="
	default:
		return "unknown"
	}
}

// ParseOp accepts both symbolic and mnemonic operator spellings, matching
// the strings climate index configurations use.
func ParseOp(s string) (Op, error) {
	switch s {
	case ">", "gt":
		return Gt, nil
	case ">=", "ge":
		return Ge, nil
	case "<", "lt":
		return Lt, nil
	case "<=", "le":
		return Le, nil
	case "==", "eq":
		return Eq, nil
	case "!=", "ne":
		return Ne, nil
	default:
		return 0, fmt.Errorf("condition: unknown operator %q", s)
	}
}

// eval applies the operator. NaN on either side yields false.
func (op Op) eval(a, b float64) bool {
	switch op {
	case Gt:
		return a > b
	case Ge:
		return a >= b
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Eq:
		return a == b
	default:
		return a != b && !math.IsNaN(a) && !math.IsNaN(b)
	}
}

// Compare evaluates x op thresh elementwise.
func Compare(x *field.Float64, op Op, thresh float64) *field.Bool {
	out := field.Like[bool](x)
	for i, v := range x.Data {
		out.Data[i] = op.eval(v, thresh)
	}

	return out
}

// CompareArrays evaluates x op y elementwise. The arrays must share dims
// and shape exactly.
func CompareArrays(x *field.Float64, op Op, y *field.Float64) (*field.Bool, error) {
	if err := field.CheckSameShape("condition.CompareArrays: y", x, y); err != nil {
		return nil, err
	}

	out := field.Like[bool](x)
	for i, v := range x.Data {
		out.Data[i] = op.eval(v, y.Data[i])
	}

	return out, nil
}

// And combines two condition arrays elementwise.
func And(a, b *field.Bool) (*field.Bool, error) {
	if err := field.CheckSameShape("condition.And: b", a, b); err != nil {
		return nil, err
	}

	out := field.Like[bool](a)
	for i := range a.Data {
		out.Data[i] = a.Data[i] && b.Data[i]
	}

	return out, nil
}

// Or combines two condition arrays elementwise.
func Or(a, b *field.Bool) (*field.Bool, error) {
	if err := field.CheckSameShape("condition.Or: b", a, b); err != nil {
		return nil, err
	}

	out := field.Like[bool](a)
	for i := range a.Data {
		out.Data[i] = a.Data[i] || b.Data[i]
	}

	return out, nil
}

// Not inverts a condition array elementwise.
func Not(a *field.Bool) *field.Bool {
	out := field.Like[bool](a)
	for i := range a.Data {
		out.Data[i] = !a.Data[i]
	}

	return out
}

// MaskRows restricts a condition array with a per-timestep mask shared by
// all space points: positions where mask is false become false. Season
// indices use this for mid-date day-of-year constraints.
func MaskRows(a *field.Bool, mask []bool) (*field.Bool, error) {
	if len(mask) != a.TimeLen() {
		return nil, &field.ShapeMismatchError{
			Op:   "condition.MaskRows: mask",
			Want: []int{a.TimeLen()},
			Got:  []int{len(mask)},
		}
	}

	out := field.Like[bool](a)
	stride := a.TimeStride()
	oStride := out.TimeStride()
	for p := 0; p < a.SpaceSize(); p++ {
		base := a.Base(p)
		oBase := out.Base(p)
		for t := 0; t < a.TimeLen(); t++ {
			out.Data[oBase+t*oStride] = a.Data[base+t*stride] && mask[t]
		}
	}

	return out, nil
}

// ExceedanceMagnitude returns how far each value exceeds the threshold in
// the operator's direction, clipped at zero: (x-thresh) for greater-than
// operators, (thresh-x) for less-than operators. NaN yields 0. Magnitude
// aggregates (e.g. hot spell maximum magnitude) use this as the weight
// array.
func ExceedanceMagnitude(x *field.Float64, op Op, thresh float64) (*field.Float64, error) {
	var dir float64
	switch op {
	case Gt, Ge:
		dir = 1
	case Lt, Le:
		dir = -1
	default:
		return nil, fmt.Errorf("condition.ExceedanceMagnitude: operator %s has no direction", op)
	}

	out := field.Like[float64](x)
	for i, v := range x.Data {
		m := dir * (v - thresh)
		if math.IsNaN(m) || m < 0 {
			m = 0
		}
		out.Data[i] = m
	}

	return out, nil
}
