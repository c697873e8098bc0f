package render

import (
	"math/rand"
	"testing"
)

func TestSampleOffsets_NoJitter(t *testing.T) {
	offsets := sampleOffsets(AANoJitter, 1, rand.New(rand.NewSource(1)))
	if len(offsets) != 1 || offsets[0] != (Offset{0, 0}) {
		t.Fatalf("NoJitter offsets = %v, want a single (0,0)", offsets)
	}
}

func TestSampleOffsets_Quincunx(t *testing.T) {
	offsets := sampleOffsets(AAQuincunx, 0, rand.New(rand.NewSource(1)))
	if len(offsets) != 5 {
		t.Fatalf("Quincunx produced %d samples, want 5", len(offsets))
	}
	want := map[Offset]bool{
		{0, 0}: true, {0.25, 0.25}: true, {0.25, -0.25}: true, {-0.25, 0.25}: true, {-0.25, -0.25}: true,
	}
	for _, o := range offsets {
		if !want[o] {
			t.Errorf("unexpected quincunx offset %v", o)
		}
	}
}

func TestSampleOffsets_StochasticCount(t *testing.T) {
	for _, n := range []int{1, 4, 8} {
		offsets := sampleOffsets(AAStochastic, n, rand.New(rand.NewSource(1)))
		if len(offsets) != n {
			t.Errorf("Stochastic(%d) produced %d samples", n, len(offsets))
		}
	}
}

func TestStochasticOffsets_RadiusQuarterPixel(t *testing.T) {
	offsets := stochasticOffsets(6, rand.New(rand.NewSource(2)))
	for _, o := range offsets {
		r := o.DX*o.DX + o.DY*o.DY
		if r < 0.25*0.25-1e-9 || r > 0.25*0.25+1e-9 {
			t.Errorf("offset %v has radius^2 = %v, want 0.0625", o, r)
		}
	}
}

func TestEffectiveAA_QuincunxFallsBackWithOutline(t *testing.T) {
	if got := effectiveAA(AAQuincunx, true); got != AANoJitter {
		t.Errorf("Quincunx+outline = %v, want NoJitter", got)
	}
	if got := effectiveAA(AAQuincunx, false); got != AAQuincunx {
		t.Errorf("Quincunx without outline should stay Quincunx, got %v", got)
	}
	if got := effectiveAA(AAStochastic, true); got != AAStochastic {
		t.Errorf("Stochastic+outline should be unaffected, got %v", got)
	}
}
