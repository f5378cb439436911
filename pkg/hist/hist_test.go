package hist

import (
	"math"
	"testing"
)

func makeTestH1() *H1 {
	h := New("test", 3)
	// underflow, 3 ordinary bins, overflow
	h.SetBin(0, 0.5, 0.1)
	h.SetBin(1, 10.0, 1.0)
	h.SetBin(2, 20.0, 2.0)
	h.SetBin(3, 30.0, 3.0)
	h.SetBin(4, 1.5, 0.2)
	h.Labels = []string{"A", "B", "C"}
	return h
}

func TestNBins(t *testing.T) {
	tests := []struct {
		nbins int
	}{
		{0}, {1}, {3}, {100},
	}
	for _, tt := range tests {
		h := New("h", tt.nbins)
		if got := h.NBins(); got != tt.nbins {
			t.Errorf("NBins() = %d, want %d", got, tt.nbins)
		}
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name            string
		nbins           int
		includeOverflow bool
		wantFirst       int
		wantLast        int
	}{
		{"default range", 3, false, 1, 3},
		{"overflow range", 3, true, 0, 4},
		{"single bin", 1, false, 1, 1},
		{"single bin overflow", 1, true, 0, 2},
		{"empty default", 0, false, 1, 0},
		{"empty overflow", 0, true, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New("h", tt.nbins)
			first, last := h.Range(tt.includeOverflow)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("Range(%v) = [%d, %d], want [%d, %d]",
					tt.includeOverflow, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestBinContentAndError(t *testing.T) {
	h := makeTestH1()

	if got := h.BinContent(2); got != 20.0 {
		t.Errorf("BinContent(2) = %f, want 20.0", got)
	}
	if got := h.BinError(2); got != 2.0 {
		t.Errorf("BinError(2) = %f, want 2.0", got)
	}

	// Out-of-range access returns zero, per the handle contract
	for _, i := range []int{-1, 5, 100} {
		if got := h.BinContent(i); got != 0 {
			t.Errorf("BinContent(%d) = %f, want 0", i, got)
		}
		if got := h.BinError(i); got != 0 {
			t.Errorf("BinError(%d) = %f, want 0", i, got)
		}
	}
}

func TestIntegralAndError(t *testing.T) {
	h := makeTestH1()

	integral, err := h.IntegralAndError(1, 3)
	if integral != 60.0 {
		t.Errorf("integral = %f, want 60.0", integral)
	}
	wantErr := math.Sqrt(1.0*1.0 + 2.0*2.0 + 3.0*3.0)
	if math.Abs(err-wantErr) > 1e-12 {
		t.Errorf("error = %f, want %f", err, wantErr)
	}

	// Overflow-inclusive range picks up the sentinel bins
	integral, err = h.IntegralAndError(0, 4)
	if integral != 62.0 {
		t.Errorf("full integral = %f, want 62.0", integral)
	}
	wantErr = math.Sqrt(0.1*0.1 + 1.0 + 4.0 + 9.0 + 0.2*0.2)
	if math.Abs(err-wantErr) > 1e-12 {
		t.Errorf("full error = %f, want %f", err, wantErr)
	}

	// Empty range (N = 0 histogram, default range [1, 0])
	empty := New("empty", 0)
	integral, err = empty.IntegralAndError(empty.Range(false))
	if integral != 0 || err != 0 {
		t.Errorf("empty integral = %f +- %f, want 0 +- 0", integral, err)
	}
}

func TestBinLabel(t *testing.T) {
	h := makeTestH1()

	tests := []struct {
		bin  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{3, "C"},
		{0, ""},  // underflow has no label
		{4, ""},  // overflow has no label
		{-1, ""}, // out of range
	}
	for _, tt := range tests {
		if got := h.BinLabel(tt.bin); got != tt.want {
			t.Errorf("BinLabel(%d) = %q, want %q", tt.bin, got, tt.want)
		}
	}

	unlabeled := New("h", 3)
	if got := unlabeled.BinLabel(1); got != "" {
		t.Errorf("BinLabel on unlabeled histogram = %q, want \"\"", got)
	}
}

func TestFindBin(t *testing.T) {
	h := makeTestH1()

	idx, ok := h.FindBin("B")
	if !ok || idx != 2 {
		t.Errorf("FindBin(\"B\") = (%d, %v), want (2, true)", idx, ok)
	}

	// Label and index lookup must agree on content and error
	if h.BinContent(idx) != h.BinContent(2) || h.BinError(idx) != h.BinError(2) {
		t.Error("label lookup and index lookup disagree for bin B")
	}

	if _, ok := h.FindBin("missing"); ok {
		t.Error("FindBin(\"missing\") = true, want false")
	}
}

func TestValidate(t *testing.T) {
	h := makeTestH1()
	if err := h.Validate(); err != nil {
		t.Errorf("Validate() on valid histogram: %v", err)
	}

	broken := &H1{Name: "broken", Bins: []Bin{{1, 1}}}
	if err := broken.Validate(); err == nil {
		t.Error("Validate() accepted histogram without sentinel bins")
	}

	mislabeled := New("mislabeled", 3)
	mislabeled.Labels = []string{"only-one"}
	if err := mislabeled.Validate(); err == nil {
		t.Error("Validate() accepted label/bin count mismatch")
	}
}
