package glrender

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/soypat/geometry/ms3"
)

// Binary STL layout: 80 byte header, little endian triangle count,
// then 50 bytes per triangle.
const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
	// Sanity limit on the triangle count read from an untrusted header.
	stlMaxTriangles = 1 << 28
)

type stlHeader struct {
	Header [stlHeaderSize]byte
	Count  uint32
}

type stlTriangle struct {
	Normal  [3]float32
	V1      [3]float32
	V2      [3]float32
	V3      [3]float32
	Attribs uint16
}

// WriteBinarySTL writes triangles to w in binary STL format.
// Facet normals are computed from vertex order.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	if uint64(len(triangles)) > stlMaxTriangles {
		return 0, errors.New("too many triangles for STL")
	}
	bw := bufio.NewWriter(w)
	var hdr stlHeader
	copy(hdr.Header[:], "binary STL written by molmesh")
	hdr.Count = uint32(len(triangles))
	err := binary.Write(bw, binary.LittleEndian, &hdr)
	if err != nil {
		return 0, err
	}
	n := stlHeaderSize + 4
	for i := range triangles {
		t := &triangles[i]
		d := stlTriangle{
			Normal: vecArray(triangleNormal(*t)),
			V1:     vecArray(t[0]),
			V2:     vecArray(t[1]),
			V3:     vecArray(t[2]),
		}
		err = binary.Write(bw, binary.LittleEndian, &d)
		if err != nil {
			return n, err
		}
		n += stlTriangleSize
	}
	return n, bw.Flush()
}

// ReadBinarySTL reads triangles in binary STL format from r. Facet normals are discarded.
func ReadBinarySTL(r io.Reader) ([]ms3.Triangle, error) {
	br := bufio.NewReader(r)
	var hdr stlHeader
	err := binary.Read(br, binary.LittleEndian, &hdr)
	if err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}
	if hdr.Count > stlMaxTriangles {
		return nil, fmt.Errorf("STL triangle count %d too large", hdr.Count)
	}
	triangles := make([]ms3.Triangle, hdr.Count)
	var d stlTriangle
	for i := range triangles {
		err = binary.Read(br, binary.LittleEndian, &d)
		if err != nil {
			return nil, fmt.Errorf("reading STL triangle %d of %d: %w", i, hdr.Count, err)
		}
		triangles[i] = ms3.Triangle{arrayVec(d.V1), arrayVec(d.V2), arrayVec(d.V3)}
	}
	return triangles, nil
}

func vecArray(v ms3.Vec) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func arrayVec(a [3]float32) ms3.Vec { return ms3.Vec{X: a[0], Y: a[1], Z: a[2]} }
