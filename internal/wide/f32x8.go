package wide

import "github.com/chewxy/math32"

// Lanes is the number of lanes in every wide type.
const Lanes = 8

// F32x8 represents 8 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F32x8 [Lanes]float32

// SplatF32 creates F32x8 with all elements set to n.
// This is useful for initializing constants or broadcasting a single value.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F32x8) Sub(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Scale multiplies every element by s.
func (v F32x8) Scale(s float32) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// MulAdd returns v*m + a element-wise.
func (v F32x8) MulAdd(m, a F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i]*m[i] + a[i]
	}
	return result
}

// Div performs element-wise division.
// Division by zero results in +Inf, -Inf, or NaN according to IEEE 754.
func (v F32x8) Div(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] / other[i]
	}
	return result
}

// Sqrt computes square root of each element.
// Negative values result in NaN according to IEEE 754.
func (v F32x8) Sqrt() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = math32.Sqrt(v[i])
	}
	return result
}

// Floor rounds each element down to an integral value.
func (v F32x8) Floor() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = math32.Floor(v[i])
	}
	return result
}

// Clamp clamps each element to [minVal, maxVal].
func (v F32x8) Clamp(minVal, maxVal float32) F32x8 {
	var result F32x8
	for i := range v {
		switch {
		case v[i] < minVal:
			result[i] = minVal
		case v[i] > maxVal:
			result[i] = maxVal
		default:
			result[i] = v[i]
		}
	}
	return result
}

// Lerp performs linear interpolation: v + (other - v) * t.
// When t=0, returns v; when t=1, returns other.
func (v F32x8) Lerp(other F32x8, t F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + (other[i]-v[i])*t[i]
	}
	return result
}

// Min performs element-wise minimum.
func (v F32x8) Min(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = min(v[i], other[i])
	}
	return result
}

// Max performs element-wise maximum.
func (v F32x8) Max(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = max(v[i], other[i])
	}
	return result
}

// GreaterEqual returns a mask with bit i set when v[i] >= other[i].
// NaN lanes compare false.
func (v F32x8) GreaterEqual(other F32x8) Mask8 {
	var m Mask8
	for i := range v {
		if v[i] >= other[i] {
			m |= 1 << i
		}
	}
	return m
}

// Greater returns a mask with bit i set when v[i] > other[i].
func (v F32x8) Greater(other F32x8) Mask8 {
	var m Mask8
	for i := range v {
		if v[i] > other[i] {
			m |= 1 << i
		}
	}
	return m
}

// Select returns v[i] where mask bit i is set and other[i] elsewhere.
func (v F32x8) Select(mask Mask8, other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if mask&(1<<i) != 0 {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// ReduceMin returns the smallest element.
func (v F32x8) ReduceMin() float32 {
	m := v[0]
	for _, x := range v[1:] {
		m = min(m, x)
	}
	return m
}
