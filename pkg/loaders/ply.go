package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
)

var ErrBadPLY = errors.New("loaders: malformed PLY file")

// plyProperty is one property of a PLY element. List properties carry the
// type of their length prefix in CountType.
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	CountType string // Empty for scalar properties
}

type plyElement struct {
	Name       string
	Count      int
	Properties []plyProperty
}

// plyHeader represents the parsed header of a PLY file
type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// LoadPLY loads a PLY file into a triangle mesh
func LoadPLY(filename string) (*geometry.TriangleMesh, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := DecodePLY(file)
	if err != nil {
		return nil, fmt.Errorf("PLY %s: %w", filename, err)
	}

	logger.Infof("Loaded %s: %d vertices, %d triangles in %v",
		filename, len(mesh.Vertices), len(mesh.Indices), time.Since(startTime))
	return mesh, nil
}

// DecodePLY reads ascii or binary PLY data. Vertex positions come from x, y, z
// and UVs from u/v (or s/t, texture_u/texture_v) when both are present.
// Polygons are fan-triangulated; other elements and properties are skipped.
func DecodePLY(r io.Reader) (*geometry.TriangleMesh, error) {
	reader := bufio.NewReader(r)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values plyValues
	switch header.Format {
	case "ascii":
		values = newASCIIValues(reader)
	case "binary_little_endian":
		values = &binaryValues{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValues{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrBadPLY, header.Format)
	}

	var (
		vertices []core.Vec3
		uvs      []core.Vec2
		indices  [][3]int
	)
	for _, element := range header.Elements {
		hasUV := hasProperty(element, "u", "s", "texture_u") && hasProperty(element, "v", "t", "texture_v")

		for i := 0; i < element.Count; i++ {
			record, err := readPLYRecord(values, element.Properties)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrBadPLY, element.Name, i, err)
			}

			switch element.Name {
			case "vertex":
				var p [3]float64
				var uv core.Vec2
				for j, prop := range element.Properties {
					if len(record[j]) != 1 {
						continue
					}
					switch prop.Name {
					case "x":
						p[0] = record[j][0]
					case "y":
						p[1] = record[j][0]
					case "z":
						p[2] = record[j][0]
					case "u", "s", "texture_u":
						uv.X = record[j][0]
					case "v", "t", "texture_v":
						uv.Y = record[j][0]
					}
				}
				vertices = append(vertices, core.NewVec3(p[0], p[1], p[2]))
				if hasUV {
					uvs = append(uvs, uv)
				}

			case "face":
				for j, prop := range element.Properties {
					if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
						continue
					}
					polygon := record[j]
					for k := 1; k+1 < len(polygon); k++ {
						indices = append(indices, [3]int{int(polygon[0]), int(polygon[k]), int(polygon[k+1])})
					}
				}
			}
		}
	}

	return geometry.NewTriangleMesh(vertices, indices, uvs)
}

func hasProperty(element plyElement, names ...string) bool {
	for _, prop := range element.Properties {
		for _, name := range names {
			if prop.Name == name && prop.CountType == "" {
				return true
			}
		}
	}
	return false
}

// readPLYRecord reads one element instance: one value per scalar property,
// the items of each list property
func readPLYRecord(values plyValues, props []plyProperty) ([][]float64, error) {
	record := make([][]float64, len(props))
	for i, prop := range props {
		if prop.CountType == "" {
			v, err := values.next(prop.Type)
			if err != nil {
				return nil, err
			}
			record[i] = []float64{v}
			continue
		}

		count, err := values.next(prop.CountType)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("negative list length %v", count)
		}
		items := make([]float64, int(count))
		for k := range items {
			if items[k], err = values.next(prop.Type); err != nil {
				return nil, err
			}
		}
		record[i] = items
	}
	return record, nil
}

// parsePLYHeader reads up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (plyHeader, error) {
	var header plyHeader

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return header, fmt.Errorf("%w: missing ply magic number", ErrBadPLY)
	}

	for {
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)

		if len(parts) > 0 {
			switch parts[0] {
			case "end_header":
				if header.Format == "" {
					return header, fmt.Errorf("%w: missing format line", ErrBadPLY)
				}
				return header, nil
			case "format":
				if len(parts) < 2 {
					return header, fmt.Errorf("%w: invalid format line", ErrBadPLY)
				}
				header.Format = parts[1]
			case "element":
				if len(parts) < 3 {
					return header, fmt.Errorf("%w: invalid element line %q", ErrBadPLY, strings.TrimSpace(line))
				}
				count, err := strconv.Atoi(parts[2])
				if err != nil || count < 0 {
					return header, fmt.Errorf("%w: invalid element count %q", ErrBadPLY, parts[2])
				}
				header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
			case "property":
				if len(header.Elements) == 0 {
					return header, fmt.Errorf("%w: property before any element", ErrBadPLY)
				}
				prop, err := parsePLYProperty(parts[1:])
				if err != nil {
					return header, err
				}
				element := &header.Elements[len(header.Elements)-1]
				element.Properties = append(element.Properties, prop)
			}
			// comment and obj_info lines are ignored
		}

		if readErr != nil {
			return header, fmt.Errorf("%w: header ends without end_header", ErrBadPLY)
		}
	}
}

// parsePLYProperty parses "<type> <name>" or "list <count type> <item type> <name>"
func parsePLYProperty(parts []string) (plyProperty, error) {
	var prop plyProperty
	if len(parts) >= 4 && parts[0] == "list" {
		prop = plyProperty{CountType: parts[1], Type: parts[2], Name: parts[3]}
		if plyTypeSize(prop.CountType) == 0 {
			return prop, fmt.Errorf("%w: unsupported list count type %q", ErrBadPLY, prop.CountType)
		}
	} else if len(parts) >= 2 && parts[0] != "list" {
		prop = plyProperty{Type: parts[0], Name: parts[1]}
	} else {
		return prop, fmt.Errorf("%w: invalid property definition %q", ErrBadPLY, strings.Join(parts, " "))
	}

	if plyTypeSize(prop.Type) == 0 {
		return prop, fmt.Errorf("%w: unsupported data type %q", ErrBadPLY, prop.Type)
	}
	return prop, nil
}

// plyTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyValues yields successive values of the body as float64
type plyValues interface {
	next(dataType string) (float64, error)
}

type binaryValues struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValues) next(dataType string) (float64, error) {
	buf := b.buf[:plyTypeSize(dataType)]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

type asciiValues struct {
	scanner *bufio.Scanner
}

func newASCIIValues(r io.Reader) *asciiValues {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &asciiValues{scanner: scanner}
}

func (a *asciiValues) next(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}
