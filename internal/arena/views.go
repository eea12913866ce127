package arena

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Records is a read view over packed fixed-stride records, such as a
// vertex buffer whose layout is known only to the bound vertex shader.
type Records struct {
	data   []byte
	stride int
}

// NewRecords creates a view of data as records of stride bytes.
// A trailing partial record is not addressable. Panics if stride <= 0.
func NewRecords(data []byte, stride int) Records {
	if stride <= 0 {
		panic(fmt.Sprintf("arena: invalid record stride %d", stride))
	}
	return Records{data: data, stride: stride}
}

// Len returns the number of whole records.
func (r Records) Len() int { return len(r.data) / r.stride }

// Stride returns the record size in bytes.
func (r Records) Stride() int { return r.stride }

// Bytes returns the underlying buffer.
func (r Records) Bytes() []byte { return r.data }

// Record returns record i. The result aliases the view.
func (r Records) Record(i int) []byte {
	off := i * r.stride
	return r.data[off : off+r.stride : off+r.stride]
}

// Slice returns the view of records [lo, hi).
func (r Records) Slice(lo, hi int) Records {
	return Records{data: r.data[lo*r.stride : hi*r.stride], stride: r.stride}
}

// Registers is a view over per-item attribute register blocks stored
// item-major: item i owns registers [i*n, (i+1)*n).
type Registers struct {
	data []mgl32.Vec4
	n    int
}

// NewRegisters creates a view of data with n registers per item.
// Panics if n <= 0.
func NewRegisters(data []mgl32.Vec4, n int) Registers {
	if n <= 0 {
		panic(fmt.Sprintf("arena: invalid register count %d", n))
	}
	return Registers{data: data, n: n}
}

// PerItem returns the number of registers per item.
func (r Registers) PerItem() int { return r.n }

// Len returns the number of items.
func (r Registers) Len() int { return len(r.data) / r.n }

// Data returns the underlying register storage.
func (r Registers) Data() []mgl32.Vec4 { return r.data }

// Item returns the registers of item i. The result aliases the view.
func (r Registers) Item(i int) []mgl32.Vec4 {
	off := i * r.n
	return r.data[off : off+r.n : off+r.n]
}

// Triangle returns the register blocks of items 3t, 3t+1 and 3t+2.
func (r Registers) Triangle(t int) (v0, v1, v2 []mgl32.Vec4) {
	return r.Item(3 * t), r.Item(3*t + 1), r.Item(3*t + 2)
}

// Slice returns the view of items [lo, hi).
func (r Registers) Slice(lo, hi int) Registers {
	return Registers{data: r.data[lo*r.n : hi*r.n], n: r.n}
}
