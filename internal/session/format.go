package session

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/phasorcalc/internal/ctyphasor"
	"github.com/vk/phasorcalc/internal/phasor"
)

// FormatValue renders a result for the terminal. Top-level strings print
// as-is so multi-line output such as ls() stays readable.
func FormatValue(v cty.Value, d phasor.Display) string {
	if v.IsKnown() && !v.IsNull() && v.Type() == cty.String {
		return v.AsString()
	}
	var b strings.Builder
	formatInto(&b, v, d)
	return b.String()
}

func formatInto(b *strings.Builder, v cty.Value, d phasor.Display) {
	switch {
	case !v.IsKnown():
		b.WriteString("(unknown)")
		return
	case v.IsNull():
		b.WriteString("null")
		return
	}

	ty := v.Type()
	switch {
	case ty.Equals(ctyphasor.Type):
		p, _ := ctyphasor.Get(v)
		b.WriteString(p.Format(d))
	case ty == cty.Number:
		b.WriteString(formatNumber(v))
	case ty == cty.String:
		b.WriteString(strconv.Quote(v.AsString()))
	case ty == cty.Bool:
		b.WriteString(strconv.FormatBool(v.True()))
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		b.WriteByte('[')
		for i, el := range v.AsValueSlice() {
			if i > 0 {
				b.WriteString(", ")
			}
			formatInto(b, el, d)
		}
		b.WriteByte(']')
	case ty.IsObjectType() || ty.IsMapType():
		m := v.AsValueMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(" = ")
			formatInto(b, m[k], d)
		}
		b.WriteByte('}')
	default:
		b.WriteString(v.GoString())
	}
}

// formatNumber prints integers without a fraction and everything else in
// the shortest form that round-trips.
func formatNumber(v cty.Value) string {
	bf := v.AsBigFloat()
	if bf.IsInf() {
		if bf.Sign() < 0 {
			return "-Inf"
		}
		return "+Inf"
	}
	f, _ := bf.Float64()
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		if f == 0 {
			return "0"
		}
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
