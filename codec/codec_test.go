package codec

import (
	"reflect"
	"testing"
)

func allCodecs() []Codec {
	return []Codec{Raw32{}, VByteGap{}, Simple8bGap{}}
}

// Property 1: round-trip for every codec over a variety of ascending lists.
func TestRoundTrip(t *testing.T) {
	cases := [][]int{
		{0},
		{1, 2, 3},
		{34, 67, 89, 454},
		{34, 67, 89, 454, 2345738},
		{5, 100, 100000, 100001, 4000000},
	}

	for _, c := range allCodecs() {
		for _, xs := range cases {
			encoded, err := c.Encode(xs)
			if err != nil {
				t.Fatalf("%s: Encode(%v) error: %v", c.Name(), xs, err)
			}
			decoded, err := c.Decode(encoded)
			if err != nil {
				t.Fatalf("%s: Decode error: %v", c.Name(), err)
			}
			if !reflect.DeepEqual(decoded, xs) {
				t.Errorf("%s: round-trip(%v) = %v, want %v", c.Name(), xs, decoded, xs)
			}
		}
	}
}

func TestRoundTrip_RejectsNonAscending(t *testing.T) {
	for _, c := range allCodecs() {
		if _, err := c.Encode([]int{5, 5, 6}); err == nil {
			t.Errorf("%s: expected error for non-strictly-ascending input", c.Name())
		}
		if _, err := c.Encode([]int{5, 3}); err == nil {
			t.Errorf("%s: expected error for descending input", c.Name())
		}
	}
}

func TestRoundTrip_RejectsEmpty(t *testing.T) {
	for _, c := range allCodecs() {
		if _, err := c.Encode(nil); err == nil {
			t.Errorf("%s: expected error for empty input", c.Name())
		}
	}
}

// S1 Raw32 round-trip, literal scenario from the spec.
func TestRaw32_S1(t *testing.T) {
	xs := []int{34, 67, 89, 454}
	encoded, err := Raw32{}.Encode(xs)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(encoded) != 16 {
		t.Errorf("len(encoded) = %d, want 16", len(encoded))
	}
	decoded, err := Raw32{}.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(decoded, xs) {
		t.Errorf("decoded = %v, want %v", decoded, xs)
	}
}

func TestRaw32_RejectsOverflow(t *testing.T) {
	if _, err := (Raw32{}).Encode([]int{1, 1 << 33}); err == nil {
		t.Error("expected ErrValueOverflow for a value beyond 2^32-1")
	}
}

// Property 2: integers in [0, 127] encode to exactly one byte, high bit set.
func TestVByte_SingleByteRegion(t *testing.T) {
	for n := 0; n <= 127; n++ {
		b := vbEncodeNumber(n)
		if len(b) != 1 {
			t.Fatalf("vbEncodeNumber(%d) produced %d bytes, want 1", n, len(b))
		}
		if b[0]&0x80 == 0 {
			t.Errorf("vbEncodeNumber(%d) = %#x, high bit not set", n, b[0])
		}
	}
}

// S2 VByte round-trip, literal scenario from the spec.
func TestVByte_S2(t *testing.T) {
	xs := []int{34, 67, 89, 454, 2345738}
	wantGaps := []int{34, 33, 22, 365, 2345284}

	g, err := gaps(xs)
	if err != nil {
		t.Fatalf("gaps error: %v", err)
	}
	if !reflect.DeepEqual(g, wantGaps) {
		t.Fatalf("gaps(%v) = %v, want %v", xs, g, wantGaps)
	}

	encoded, err := VByteGap{}.Encode(xs)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	decoded, err := VByteGap{}.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(decoded, xs) {
		t.Errorf("decoded = %v, want %v", decoded, xs)
	}
}

// Property 4: gap monotonicity - g[0] = ps[0], g[i] >= 1 for i >= 1.
func TestGaps_Monotonicity(t *testing.T) {
	xs := []int{3, 10, 11, 2000}
	g, err := gaps(xs)
	if err != nil {
		t.Fatalf("gaps error: %v", err)
	}
	if g[0] != xs[0] {
		t.Errorf("g[0] = %d, want %d", g[0], xs[0])
	}
	for i := 1; i < len(g); i++ {
		if g[i] < 1 {
			t.Errorf("g[%d] = %d, want >= 1", i, g[i])
		}
	}
}

// S3 Simple-8b runs, literal scenario from the spec.
func TestSimple8b_S3(t *testing.T) {
	xs := make([]int, 240)
	for i := range xs {
		xs[i] = i + 1
	}

	encoded, err := Simple8bGap{}.Encode(xs)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(encoded) != 8 {
		t.Fatalf("len(encoded) = %d, want 8 (one word)", len(encoded))
	}
	if selector := encoded[7] & 0xF; selector != 0 {
		t.Errorf("selector = %d, want 0", selector)
	}

	decoded, err := Simple8bGap{}.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(decoded, xs) {
		t.Errorf("decoded = %v, want %v", decoded, xs)
	}
}

// Property 3: selector choice across a 240-run followed by a 120-run.
func TestSimple8b_SelectorChoice(t *testing.T) {
	xs := make([]int, 360)
	for i := range xs {
		xs[i] = i + 1
	}

	encoded, err := Simple8bGap{}.Encode(xs)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(encoded) != 16 {
		t.Fatalf("len(encoded) = %d, want 16 (two words)", len(encoded))
	}
	if sel := encoded[7] & 0xF; sel != 0 {
		t.Errorf("first word selector = %d, want 0", sel)
	}
	if sel := encoded[15] & 0xF; sel != 1 {
		t.Errorf("second word selector = %d, want 1", sel)
	}
}

func TestSimple8b_RejectsGapTooLarge(t *testing.T) {
	xs := []int{0, 1 << 61}
	if _, err := (Simple8bGap{}).Encode(xs); err == nil {
		t.Error("expected ErrGapTooLarge for a 61-bit gap")
	}
}

func TestSimple8b_MixedWidths(t *testing.T) {
	// Gaps that force a variety of selectors: large, then small, then large.
	xs := []int{1000000, 1000001, 1000002, 1000003, 2000000}
	encoded, err := Simple8bGap{}.Encode(xs)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	decoded, err := Simple8bGap{}.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(decoded, xs) {
		t.Errorf("decoded = %v, want %v", decoded, xs)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"raw32", "vbyte", "simple8b"} {
		c, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) error: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, c.Name())
		}
	}
	if _, err := ByName("nonsense"); err == nil {
		t.Error("expected ErrUnknownCodecName for an unregistered name")
	}
}
