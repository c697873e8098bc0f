// Package stl loads triangle soups from ASCII or binary STL files. Mesh
// loading sits outside the core ray tracer (spec.md §9: "mesh loading is
// out of scope... do not attempt to detect ASCII vs binary STL inside the
// ray tracer"); this package is the external collaborator spec.md §6
// delegates that to, grounded on the teacher's pkg/loaders binary-format
// readers (encoding/binary, io.ReadFull, bufio.Scanner).
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/corvidlabs/rtrace/internal/primitive"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// binaryHeaderSize is the 80-byte free-form header preceding the uint32
// triangle count in a binary STL file.
const binaryHeaderSize = 80

// binaryTriangleSize is 12 floats (normal + 3 vertices, 4 bytes each) plus
// the trailing 2-byte attribute count.
const binaryTriangleSize = 12*4 + 2

// Load reads an STL file from disk and returns its triangles, auto-detecting
// ASCII vs binary layout.
func Load(filename string) ([]primitive.Triangle, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open STL file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads triangles from r, auto-detecting ASCII vs binary STL.
func Decode(r io.Reader) ([]primitive.Triangle, error) {
	buf := bufio.NewReader(r)
	peek, err := buf.Peek(5)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read STL header: %w", err)
	}
	if string(peek) == "solid" {
		// Every ASCII file opens with "solid", but some binary writers also
		// start their free-form header with it; disambiguate by checking
		// the binary triangle count against the total byte length.
		all, err := io.ReadAll(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read STL file: %w", err)
		}
		if looksBinary(all) {
			return decodeBinary(bytes.NewReader(all))
		}
		return decodeASCII(bytes.NewReader(all))
	}
	return decodeBinary(buf)
}

// looksBinary checks whether data's declared binary triangle count matches
// its actual length, the standard heuristic for STL files whose header
// happens to start with "solid".
func looksBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize : binaryHeaderSize+4])
	want := binaryHeaderSize + 4 + int(count)*binaryTriangleSize
	return want == len(data)
}

func decodeBinary(r io.Reader) ([]primitive.Triangle, error) {
	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read binary STL header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	triangles := make([]primitive.Triangle, 0, count)
	rec := make([]byte, binaryTriangleSize)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		normal := readVec3(rec[0:12])
		v0 := readVec3(rec[12:24])
		v1 := readVec3(rec[24:36])
		v2 := readVec3(rec[36:48])
		triangles = append(triangles, triangleFrom(v0, v1, v2, normal))
	}
	return triangles, nil
}

func readVec3(b []byte) vecmath.Vec3 {
	x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	z := math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))
	return vecmath.NewVec3(float64(x), float64(y), float64(z))
}

func decodeASCII(r io.Reader) ([]primitive.Triangle, error) {
	scanner := bufio.NewScanner(r)
	var triangles []primitive.Triangle
	var normal vecmath.Vec3
	var verts []vecmath.Vec3

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("malformed facet normal line: %q", scanner.Text())
			}
			v, err := parseVec3(fields[2:5])
			if err != nil {
				return nil, err
			}
			normal = v
			verts = verts[:0]
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("malformed vertex line: %q", scanner.Text())
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, err
			}
			verts = append(verts, v)
		case "endfacet":
			if len(verts) != 3 {
				return nil, fmt.Errorf("facet has %d vertices, want 3", len(verts))
			}
			triangles = append(triangles, triangleFrom(verts[0], verts[1], verts[2], normal))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ASCII STL: %w", err)
	}
	return triangles, nil
}

func parseVec3(fields []string) (vecmath.Vec3, error) {
	vals := [3]float64{}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vecmath.Vec3{}, fmt.Errorf("invalid number %q: %w", f, err)
		}
		vals[i] = v
	}
	return vecmath.NewVec3(vals[0], vals[1], vals[2]), nil
}

// triangleFrom builds a Triangle, falling back to a computed face normal
// when the file's stored normal is degenerate (some exporters emit all
// zeros).
func triangleFrom(v0, v1, v2, normal vecmath.Vec3) primitive.Triangle {
	if normal.Length() < 1e-9 {
		normal = v1.Sub(v0).Cross(v2.Sub(v0))
		if normal.Length() > 1e-9 {
			normal = normal.Normalize()
		}
	}
	return primitive.Triangle{V0: v0, V1: v1, V2: v2, FaceNormal: normal}
}
