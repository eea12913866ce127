package wide

// Vec4x8 is one 4-component register for 8 items in Structure-of-Arrays
// layout: X[i], Y[i], Z[i], W[i] belong to lane i.
type Vec4x8 struct {
	X, Y, Z, W F32x8
}

// SplatVec4 broadcasts a single 4-component value to every lane.
func SplatVec4(v [4]float32) Vec4x8 {
	return Vec4x8{
		X: SplatF32(v[0]),
		Y: SplatF32(v[1]),
		Z: SplatF32(v[2]),
		W: SplatF32(v[3]),
	}
}

// Lane returns the 4-component value of lane i.
func (v *Vec4x8) Lane(i int) [4]float32 {
	return [4]float32{v.X[i], v.Y[i], v.Z[i], v.W[i]}
}

// SetLane stores a 4-component value into lane i.
func (v *Vec4x8) SetLane(i int, c [4]float32) {
	v.X[i] = c[0]
	v.Y[i] = c[1]
	v.Z[i] = c[2]
	v.W[i] = c[3]
}

// Interpolate evaluates v0 + (v1-v0)*u + (v2-v0)*v for every lane, the
// barycentric blend of three per-triangle constants.
func Interpolate(v0, v1, v2 [4]float32, u, v F32x8) Vec4x8 {
	var out Vec4x8
	comps := [4]*F32x8{&out.X, &out.Y, &out.Z, &out.W}
	for c, dst := range comps {
		d1 := v1[c] - v0[c]
		d2 := v2[c] - v0[c]
		for i := range Lanes {
			dst[i] = v0[c] + d1*u[i] + d2*v[i]
		}
	}
	return out
}

// Dot3 returns the per-lane dot product of the xyz components.
func (v *Vec4x8) Dot3(o *Vec4x8) F32x8 {
	var result F32x8
	for i := range Lanes {
		result[i] = v.X[i]*o.X[i] + v.Y[i]*o.Y[i] + v.Z[i]*o.Z[i]
	}
	return result
}

// Normalize3 scales the xyz components of every lane to unit length.
// Zero-length lanes are left unchanged.
func (v Vec4x8) Normalize3() Vec4x8 {
	l := v.Dot3(&v).Sqrt()
	for i := range Lanes {
		if l[i] == 0 {
			continue
		}
		v.X[i] /= l[i]
		v.Y[i] /= l[i]
		v.Z[i] /= l[i]
	}
	return v
}
