package wide

// Transpose converts lane-major registers into per-item register blocks.
//
// Contract: src holds regs registers (src[r] is register r for all 8
// lanes). dst receives Lanes*regs values laid out item-major, so register r
// of lane l is written to dst[l*regs+r]. Only the first n lanes are written
// (n <= Lanes), which lets the caller emit a partial final batch.
//
// Transpose panics if src has fewer than regs registers or dst is shorter
// than n*regs.
func Transpose[V ~[4]float32](dst []V, src []Vec4x8, regs, n int) {
	_ = src[regs-1]
	_ = dst[n*regs-1]
	for r := range regs {
		reg := &src[r]
		for l := range n {
			dst[l*regs+r] = V{reg.X[l], reg.Y[l], reg.Z[l], reg.W[l]}
		}
	}
}
