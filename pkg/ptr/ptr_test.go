package ptr

import "testing"

func TestDeref(t *testing.T) {
	if got := Deref[int](nil); got != 0 {
		t.Errorf("Deref(nil) = %d, want 0", got)
	}

	if got := Deref(Of("x")); got != "x" {
		t.Errorf("Deref(Of(x)) = %q, want x", got)
	}
}

func TestOfCopies(t *testing.T) {
	v := 1
	p := Of(v)
	v = 2

	if *p != 1 {
		t.Errorf("*Of(v) = %d after v changed, want 1", *p)
	}
}
