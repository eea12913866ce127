package wide

import (
	"math"
	"testing"
)

func TestSplatF32(t *testing.T) {
	tests := []struct {
		name  string
		value float32
	}{
		{"zero", 0.0},
		{"one", 1.0},
		{"half", 0.5},
		{"negative", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatF32(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("element %d = %f, want %f", i, v, tt.value)
				}
			}
		})
	}
}

func TestF32x8_Arithmetic(t *testing.T) {
	a := F32x8{1, 2, 3, 4, 5, 6, 7, 8}
	b := SplatF32(2)

	tests := []struct {
		name string
		got  F32x8
		want F32x8
	}{
		{"Add", a.Add(b), F32x8{3, 4, 5, 6, 7, 8, 9, 10}},
		{"Sub", a.Sub(b), F32x8{-1, 0, 1, 2, 3, 4, 5, 6}},
		{"Mul", a.Mul(b), F32x8{2, 4, 6, 8, 10, 12, 14, 16}},
		{"Scale", a.Scale(0.5), F32x8{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}},
		{"Div", a.Div(b), F32x8{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}},
		{"MulAdd", a.MulAdd(b, SplatF32(1)), F32x8{3, 5, 7, 9, 11, 13, 15, 17}},
		{"Min", a.Min(SplatF32(4)), F32x8{1, 2, 3, 4, 4, 4, 4, 4}},
		{"Max", a.Max(SplatF32(4)), F32x8{4, 4, 4, 4, 5, 6, 7, 8}},
		{"Clamp", a.Clamp(2, 6), F32x8{2, 2, 3, 4, 5, 6, 6, 6}},
		{"Lerp", SplatF32(0).Lerp(SplatF32(10), SplatF32(0.5)), SplatF32(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestF32x8_Sqrt(t *testing.T) {
	got := F32x8{0, 1, 4, 9, 16, 25, 36, -1}.Sqrt()
	want := [7]float32{0, 1, 2, 3, 4, 5, 6}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("Sqrt()[%d] = %v, want %v", i, got[i], w)
		}
	}
	if !math.IsNaN(float64(got[7])) {
		t.Errorf("Sqrt()[7] = %v, want NaN", got[7])
	}
}

func TestF32x8_Floor(t *testing.T) {
	got := F32x8{-1.5, -0.5, 0, 0.5, 1, 1.99, 2.5, -2}.Floor()
	want := F32x8{-2, -1, 0, 0, 1, 1, 2, -2}
	if got != want {
		t.Errorf("Floor() = %v, want %v", got, want)
	}
}

func TestF32x8_Compare(t *testing.T) {
	a := F32x8{0, 1, 2, 3, 4, 5, 6, 7}
	b := SplatF32(3)

	if got := a.GreaterEqual(b); got != 0b11111000 {
		t.Errorf("GreaterEqual() = %08b, want 11111000", got)
	}
	if got := a.Greater(b); got != 0b11110000 {
		t.Errorf("Greater() = %08b, want 11110000", got)
	}

	nan := SplatF32(float32(math.NaN()))
	if got := nan.GreaterEqual(b); got != 0 {
		t.Errorf("NaN GreaterEqual() = %08b, want 0", got)
	}
}

func TestF32x8_Select(t *testing.T) {
	a := SplatF32(1)
	b := SplatF32(2)
	got := a.Select(0b00001111, b)
	want := F32x8{1, 1, 1, 1, 2, 2, 2, 2}
	if got != want {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestF32x8_ReduceMin(t *testing.T) {
	if got := (F32x8{3, 2, 8, -1, 5, 0, 9, 4}).ReduceMin(); got != -1 {
		t.Errorf("ReduceMin() = %v, want -1", got)
	}
}

func TestI64x8(t *testing.T) {
	r := RampI64(-3, 1)
	if want := (I64x8{-3, -2, -1, 0, 1, 2, 3, 4}); r != want {
		t.Fatalf("RampI64() = %v, want %v", r, want)
	}
	if got := r.Positive(); got != 0b11110000 {
		t.Errorf("Positive() = %08b, want 11110000", got)
	}
	if got := r.Zero(); got != 0b00001000 {
		t.Errorf("Zero() = %08b, want 00001000", got)
	}
	if got := r.AddScalar(4); got != (I64x8{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("AddScalar() = %v", got)
	}
	if got := RampI64(-257, 0).Shr(8); got != RampI64(-2, 0) {
		t.Errorf("Shr() = %v, want all -2 (arithmetic shift)", got)
	}
	if got := RampI64(7, 0).Float(); got != SplatF32(7) {
		t.Errorf("Float() = %v, want all 7", got)
	}
}

func TestLaneRange(t *testing.T) {
	tests := []struct {
		lo, hi int
		want   Mask8
	}{
		{0, 7, AllLanes},
		{2, 4, 0b00011100},
		{-5, 1, 0b00000011},
		{6, 20, 0b11000000},
		{5, 4, 0},
		{3, 3, 0b00001000},
	}
	for _, tt := range tests {
		if got := LaneRange(tt.lo, tt.hi); got != tt.want {
			t.Errorf("LaneRange(%d, %d) = %08b, want %08b", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestMask8(t *testing.T) {
	m := Mask8(0b10100101)
	if m.Count() != 4 {
		t.Errorf("Count() = %d, want 4", m.Count())
	}
	for i, want := range []bool{true, false, true, false, false, true, false, true} {
		if m.Active(i) != want {
			t.Errorf("Active(%d) = %v, want %v", i, m.Active(i), want)
		}
	}
}
