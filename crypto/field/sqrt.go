package field

// Sqrt returns a square root of a and true, or false when a is not a
// square. Square roots are only taken of public values (point
// decompression), so the Tonelli-Shanks loop is variable time.
func (a Element) Sqrt() (Element, bool) {
	a.same("sqrt", a)
	if a.IsZero() {
		return a, true
	}
	f := a.f

	// p = 3 mod 4: a^((p+1)/4).
	if f.s == 1 {
		x := a.Exp(f.qPlus1Half)
		if !x.Square().Equal(a) {
			return Element{}, false
		}
		return x, true
	}

	x := a.Exp(f.qPlus1Half)
	t := a.Exp(f.q)
	c := f.c
	m := f.s
	for !t.IsOne() {
		i := 0
		for t2 := t; !t2.IsOne(); t2 = t2.Square() {
			i++
			if i == m {
				return Element{}, false
			}
		}
		b := c
		for j := 0; j < m-i-1; j++ {
			b = b.Square()
		}
		x = x.Mul(b)
		c = b.Square()
		t = t.Mul(c)
		m = i
	}
	return x, true
}
