package field

import "testing"

func TestQM31MulInverse(t *testing.T) {
	x := NewQM31(NewCM31(New(3), New(7)), NewCM31(New(11), New(13)))
	inv := x.Inverse()
	if got := x.Mul(inv); !got.Equal(QM31One) {
		t.Fatalf("x * x^-1 = %+v, want 1", got)
	}
}

func TestQM31AddSubRoundTrip(t *testing.T) {
	a := NewQM31(NewCM31(New(1), New(2)), NewCM31(New(3), New(4)))
	b := NewQM31(NewCM31(New(5), New(6)), NewCM31(New(7), New(8)))
	if got := a.Add(b).Sub(b); !got.Equal(a) {
		t.Fatalf("(a+b)-b = %+v, want %+v", got, a)
	}
}

func TestQM31FromM31Embedding(t *testing.T) {
	v := New(99)
	embedded := FromM31(v)
	if embedded.A.A != v || embedded.A.B != Zero || embedded.B.A != Zero || embedded.B.B != Zero {
		t.Fatal("FromM31 should embed into the A.A coordinate with every other coordinate zero")
	}
}

func TestBatchInverse(t *testing.T) {
	xs := []QM31{
		FromM31(New(2)),
		FromM31(New(3)),
		NewQM31(NewCM31(New(5), New(1)), NewCM31(New(0), New(2))),
	}
	invs := BatchInverse(xs)
	for i, x := range xs {
		if got := x.Mul(invs[i]); !got.Equal(QM31One) {
			t.Fatalf("BatchInverse[%d]: x*inv = %+v, want 1", i, got)
		}
	}
}

func TestQM31IsZero(t *testing.T) {
	if !QM31Zero.IsZero() {
		t.Fatal("QM31Zero.IsZero() should be true")
	}
	if QM31One.IsZero() {
		t.Fatal("QM31One.IsZero() should be false")
	}
}
