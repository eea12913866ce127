package pipeline

// PackColor encodes an RGBA colour with components in [0, 1] as
// 0xAARRGGBB. Components are clamped; NaN encodes as 0.
func PackColor(c [4]float32) uint32 {
	return channel(c[3])<<24 | channel(c[0])<<16 | channel(c[1])<<8 | channel(c[2])
}

// UnpackColor decodes a 0xAARRGGBB colour.
func UnpackColor(p uint32) [4]float32 {
	return [4]float32{
		float32(p>>16&0xFF) / 255,
		float32(p>>8&0xFF) / 255,
		float32(p&0xFF) / 255,
		float32(p>>24) / 255,
	}
}

func channel(v float32) uint32 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(v*255 + 0.5)
}
