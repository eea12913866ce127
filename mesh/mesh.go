// Package mesh reads and writes indexed triangle meshes and builds the
// procedural meshes used by the demo scenes.
//
// A mesh blob is a Header followed by SizeOfData bytes: NumVertices
// fixed-stride vertex records, then NumIndices little-endian uint32
// indices. The vertex layout is opaque here; it is defined by the vertex
// shader that consumes the mesh, and the stride is recovered from the
// header sizes.
package mesh

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Errors returned by the readers.
var (
	// ErrShortData is returned when a blob ends before its declared size.
	ErrShortData = errors.New("mesh: short data")

	// ErrSizeMismatch is returned when the header sizes are inconsistent.
	ErrSizeMismatch = errors.New("mesh: size mismatch")
)

// HeaderSize is the encoded size of Header in bytes.
const HeaderSize = 12

// Header is the fixed-size prefix of a mesh blob.
type Header struct {
	SizeOfData  uint32
	NumVertices uint32
	NumIndices  uint32
}

// Stride returns the vertex record size implied by the header.
func (h Header) Stride() (int, error) {
	indexBytes := uint64(h.NumIndices) * 4
	if uint64(h.SizeOfData) < indexBytes {
		return 0, fmt.Errorf("%w: %d bytes cannot hold %d indices", ErrSizeMismatch, h.SizeOfData, h.NumIndices)
	}
	vertexBytes := uint64(h.SizeOfData) - indexBytes
	if h.NumVertices == 0 {
		if vertexBytes != 0 {
			return 0, fmt.Errorf("%w: %d vertex bytes for 0 vertices", ErrSizeMismatch, vertexBytes)
		}
		return 0, nil
	}
	if vertexBytes%uint64(h.NumVertices) != 0 {
		return 0, fmt.Errorf("%w: %d vertex bytes for %d vertices", ErrSizeMismatch, vertexBytes, h.NumVertices)
	}
	return int(vertexBytes / uint64(h.NumVertices)), nil
}

// Mesh is an indexed triangle mesh with packed vertex records.
type Mesh struct {
	Stride   int
	Vertices []byte
	Indices  []uint32
}

// VertexCount returns the number of whole vertex records.
func (m *Mesh) VertexCount() int {
	if m.Stride <= 0 {
		return 0
	}
	return len(m.Vertices) / m.Stride
}

// Header returns the header describing m.
func (m *Mesh) Header() Header {
	return Header{
		SizeOfData:  uint32(len(m.Vertices) + 4*len(m.Indices)),
		NumVertices: uint32(m.VertexCount()),
		NumIndices:  uint32(len(m.Indices)),
	}
}

// Read decodes a mesh blob from r.
func Read(r io.Reader) (*Mesh, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header", ErrShortData)
		}
		return nil, fmt.Errorf("mesh: read header: %w", err)
	}
	stride, err := h.Stride()
	if err != nil {
		return nil, err
	}

	// The buffer grows with the bytes actually present, so a header
	// claiming more data than the stream holds cannot force a large
	// allocation.
	data, err := io.ReadAll(io.LimitReader(r, int64(h.SizeOfData)))
	if err != nil {
		return nil, fmt.Errorf("mesh: read data: %w", err)
	}
	if len(data) < int(h.SizeOfData) {
		return nil, fmt.Errorf("%w: want %d bytes of data, have %d", ErrShortData, h.SizeOfData, len(data))
	}

	vertexBytes := int(h.NumVertices) * stride
	m := &Mesh{
		Stride:   stride,
		Vertices: data[:vertexBytes:vertexBytes],
		Indices:  make([]uint32, h.NumIndices),
	}
	for i := range m.Indices {
		m.Indices[i] = binary.LittleEndian.Uint32(data[vertexBytes+4*i:])
	}
	return m, nil
}

// ReadFile decodes the mesh blob stored at path.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", path, err)
	}
	return m, nil
}

// WriteTo encodes m as a mesh blob.
func (m *Mesh) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, HeaderSize+len(m.Vertices)+4*len(m.Indices))
	h := m.Header()
	buf = binary.LittleEndian.AppendUint32(buf, h.SizeOfData)
	buf = binary.LittleEndian.AppendUint32(buf, h.NumVertices)
	buf = binary.LittleEndian.AppendUint32(buf, h.NumIndices)
	buf = append(buf, m.Vertices[:int(h.NumVertices)*m.Stride]...)
	for _, idx := range m.Indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// WriteFile writes m to path.
func WriteFile(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mesh: create %s: %w", path, err)
	}
	if _, err := m.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("mesh: write %s: %w", path, err)
	}
	return f.Close()
}

// PadIndices returns indices extended with degenerate triangles to a
// multiple of IndexAlignment. The padding repeats the first index, so it
// is dropped by triangle setup. An empty slice is returned unchanged.
func PadIndices(indices []uint32) []uint32 {
	if len(indices) == 0 || len(indices)%IndexAlignment == 0 {
		return indices
	}
	n := (len(indices) + IndexAlignment - 1) / IndexAlignment * IndexAlignment
	out := make([]uint32, n)
	copy(out, indices)
	for i := len(indices); i < n; i++ {
		out[i] = indices[0]
	}
	return out
}

// IndexAlignment is the index-count multiple accepted by a draw: whole
// triangles and whole 8-vertex shader batches.
const IndexAlignment = 24
