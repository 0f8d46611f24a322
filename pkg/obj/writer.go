package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/goring/pkg/fsutil"
)

// Write emits the document with the current vertex positions.
// Every line other than vertex positions is copied verbatim.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	next := 0
	for i, line := range d.lines {
		if next < len(d.vertices) && d.vertices[next].line == i {
			vl := d.vertices[next]
			next++
			cr := strings.HasSuffix(line, "\r")
			line = formatVertex(d, vl)
			if cr {
				line += "\r"
			}
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile atomically writes the document to path
func (d *Document) WriteFile(path string) error {
	err := fsutil.WriteFileAtomic(path, d.Write)
	if err != nil {
		return fmt.Errorf("failed to write OBJ file: %w", err)
	}
	return nil
}

func formatVertex(d *Document, vl vertexLine) string {
	v := d.objects[vl.object].Vertices[vl.index]

	var sb strings.Builder
	sb.WriteString("v ")
	sb.WriteString(formatFloat(v.X))
	sb.WriteByte(' ')
	sb.WriteString(formatFloat(v.Y))
	sb.WriteByte(' ')
	sb.WriteString(formatFloat(v.Z))
	for _, f := range vl.extra {
		sb.WriteByte(' ')
		sb.WriteString(f)
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
