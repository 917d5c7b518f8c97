package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Write saves the model to path in binary or ASCII form
func Write(path string, model *Model, ascii bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if ascii {
		err = WriteASCII(file, model)
	} else {
		err = WriteBinary(file, model)
	}
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteBinary writes the 80 byte header, the count and one record per triangle
func WriteBinary(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, 80)
	copy(header, model.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range model.Triangles {
		f := binaryFacet{Normal: t.Normal, V1: t.V1, V2: t.V2, V3: t.V3}
		if err := binary.Write(bw, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteASCII writes the text form
func WriteASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)
	name := model.Name
	if name == "" {
		name = "model"
	}

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range model.Triangles {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", t.Normal.X(), t.Normal.Y(), t.Normal.Z())
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range [3][3]float32{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}
