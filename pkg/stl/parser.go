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

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
)

// facetSize is the on-disk size of one binary facet
const facetSize = 50

// Parse reads an ASCII or binary STL file
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes STL data from r. Binary files may also start with "solid",
// so the text form is only assumed when a facet keyword follows.
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if string(head) == "solid" {
		lookahead, _ := br.Peek(512)
		if bytes.Contains(lookahead, []byte("facet")) || bytes.Contains(lookahead, []byte("endsolid")) {
			return readText(br)
		}
	}
	return readBinary(br)
}

func parseVec(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func readText(r io.Reader) (*Model, error) {
	model := NewModel("")
	scanner := bufio.NewScanner(r)

	var normal mgl32.Vec3
	corners := make([]mgl32.Vec3, 0, 3)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			model.Name = strings.Join(fields[1:], " ")
		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", line)
			}
			n, err := parseVec(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad normal: %w", line, err)
			}
			normal = n
			corners = corners[:0]
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVec(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vertex: %w", line, err)
			}
			corners = append(corners, v)
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, len(corners))
			}
			model.AddTriangle(geometry.NewTriangle(normal, corners[0], corners[1], corners[2]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ASCII STL: %w", err)
	}
	return model, nil
}

func readBinary(r io.Reader) (*Model, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	model := NewModel(string(bytes.TrimRight(header[:], "\x00 ")))

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	buf := make([]byte, facetSize)
	vec := func(off int) mgl32.Vec3 {
		var v mgl32.Vec3
		for i := range v {
			v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+i*4:]))
		}
		return v
	}
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("triangle %d of %d: %w", i, count, err)
		}
		model.AddTriangle(geometry.NewTriangle(vec(0), vec(12), vec(24), vec(36)))
	}
	return model, nil
}
