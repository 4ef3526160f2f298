package boolfn

import "testing"

func TestFunctionBoundsForXor(t *testing.T) {
	e := Xor2(Var("a"), Var("b"))
	f := New(e, nil)
	if got := f.Inputs(); got != 2 {
		t.Errorf("Inputs() = %d, want 2", got)
	}
	m0, n0 := f.NaiveLatticeBounds()
	if m0 <= 0 || n0 <= 0 {
		t.Fatalf("NaiveLatticeBounds() = (%d,%d), want positive", m0, n0)
	}
	lb := f.LowerBound()
	if lb <= 0 || lb > m0*n0 {
		t.Errorf("LowerBound() = %d, want in (0, %d]", lb, m0*n0)
	}
}

func TestDegreeInequalityBoundaryCases(t *testing.T) {
	// m<=2 or n<=1 collapses i(m,n) to m; m<=3 or n<=2 collapses d(m,n) to n.
	if got, want := iBound(2, 5), 2; got != want {
		t.Errorf("iBound(2,5) = %d, want %d", got, want)
	}
	if got, want := iBound(5, 1), 5; got != want {
		t.Errorf("iBound(5,1) = %d, want %d", got, want)
	}
	if got, want := dBound(3, 5), 5; got != want {
		t.Errorf("dBound(3,5) = %d, want %d", got, want)
	}
	if got, want := dBound(5, 2), 2; got != want {
		t.Errorf("dBound(5,2) = %d, want %d", got, want)
	}
}

func TestLowerBoundNeverExceedsNaiveArea(t *testing.T) {
	fns := []*Expr{
		Var("a"),
		Xor2(Var("a"), Var("b")),
		Or(And(Var("a"), Var("b"), Var("c")), Not(Var("a"))),
	}
	for _, e := range fns {
		f := New(e, nil)
		m0, n0 := f.NaiveLatticeBounds()
		if lb := f.LowerBound(); lb > m0*n0 {
			t.Errorf("LowerBound() = %d exceeds naive area %d for %v", lb, m0*n0, e)
		}
	}
}
