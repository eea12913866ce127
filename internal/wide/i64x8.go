package wide

// I64x8 represents 8 int64 values.
// Edge functions are evaluated in 64-bit fixed point so that coordinates
// with 4 fractional bits never overflow for any realistic framebuffer size.
type I64x8 [Lanes]int64

// RampI64 returns {start, start+step, ..., start+7*step}.
func RampI64(start, step int64) I64x8 {
	var result I64x8
	for i := range result {
		result[i] = start + int64(i)*step
	}
	return result
}

// AddScalar adds n to every element.
func (v I64x8) AddScalar(n int64) I64x8 {
	var result I64x8
	for i := range v {
		result[i] = v[i] + n
	}
	return result
}

// Shr arithmetically shifts every element right by n bits.
func (v I64x8) Shr(n uint) I64x8 {
	var result I64x8
	for i := range v {
		result[i] = v[i] >> n
	}
	return result
}

// Float converts every element to float32.
func (v I64x8) Float() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(v[i])
	}
	return result
}

// Positive returns a mask of lanes with v[i] > 0.
func (v I64x8) Positive() Mask8 {
	var m Mask8
	for i := range v {
		if v[i] > 0 {
			m |= 1 << i
		}
	}
	return m
}

// Zero returns a mask of lanes with v[i] == 0.
func (v I64x8) Zero() Mask8 {
	var m Mask8
	for i := range v {
		if v[i] == 0 {
			m |= 1 << i
		}
	}
	return m
}
