// Package numfmt renders integer and float literal values as decimal text
// without going through fmt's reflection-based formatting, for use in the
// AST dumper where literal values are printed directly from their raw Go
// types.
package numfmt

// Int renders i as a decimal string.
func Int(i int64) string {
	neg := i < 0
	u := uint64(i)
	if neg {
		u = uint64(-i)
	}

	buf := make([]byte, 32)
	pos := len(buf)
	if u == 0 {
		pos--
		buf[pos] = '0'
	}
	for u != 0 {
		pos--
		buf[pos] = byte(u%10) + '0'
		u /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Float renders f as a decimal string with fixed four-digit precision
// after the point.
func Float(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}

	ip := int64(f)
	fp := f - float64(ip)

	rounded := int64(fp*10000 + 0.5)
	if rounded >= 10000 {
		ip++
		rounded -= 10000
	}
	frac := Int(rounded)
	for len(frac) < 4 {
		frac = "0" + frac
	}

	s := Int(ip) + "." + frac
	if neg {
		s = "-" + s
	}
	return s
}
