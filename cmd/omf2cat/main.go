// Command omf2cat is a minimal inspection tool for OMF2 archives: it opens
// a file, validates its index, and prints the element/attribute tree to
// stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/reader"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}

	cmd, path := flag.Arg(0), flag.Arg(1)

	switch cmd {
	case "dump":
		if err := dump(path); err != nil {
			log.Fatalf("omf2cat: %v", err)
		}
	case "version":
		if err := printVersion(path); err != nil {
			log.Fatalf("omf2cat: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: omf2cat <dump|version> <file.omf2>")
}

func printVersion(path string) error {
	r, err := reader.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	v := r.Version()
	fmt.Printf("%s %d.%d\n", path, v.Major, v.Minor)

	return nil
}

func dump(path string) error {
	r, err := reader.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	project, messages, err := r.Project()
	for _, m := range messages {
		fmt.Fprintf(os.Stderr, "warning: %s\n", m.Text)
	}
	if err != nil {
		if errors.Is(err, errs.New(errs.ValidationFailed, "")) {
			return fmt.Errorf("validation failed with %d message(s)", len(messages))
		}
		return err
	}

	fmt.Printf("project %q (%d element(s))\n", project.Name, len(project.Elements))
	if project.Description != "" {
		fmt.Printf("  description: %s\n", project.Description)
	}

	for _, el := range project.Elements {
		dumpElement(el, 1)
	}

	return nil
}

func dumpElement(el *index.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%selement %q [%s]\n", indent, el.Name, geometryLabel(el.Geometry))

	for _, attr := range el.Attributes {
		fmt.Printf("%s  attribute %q (%s, %s)\n", indent, attr.Name, attr.Location, attributeLabel(attr.Data))
	}

	if el.Geometry.Kind == index.GeometryComposite && el.Geometry.Composite != nil {
		for _, child := range el.Geometry.Composite.Elements {
			dumpElement(child, depth+1)
		}
	}
}

func geometryLabel(g index.Geometry) string {
	switch g.Kind {
	case index.GeometryPointSet:
		return fmt.Sprintf("point_set, %d vertices", g.PointSet.Vertices.Count)
	case index.GeometryLineSet:
		return fmt.Sprintf("line_set, %d vertices, %d segments", g.LineSet.Vertices.Count, g.LineSet.Segments.Count)
	case index.GeometrySurface:
		return fmt.Sprintf("surface, %d vertices, %d triangles", g.Surface.Vertices.Count, g.Surface.Triangles.Count)
	case index.GeometryGridSurface:
		return "grid_surface"
	case index.GeometryBlockModel:
		c := g.BlockModel.Grid.RegularCount
		return fmt.Sprintf("block_model, %dx%dx%d blocks", c[0], c[1], c[2])
	case index.GeometryComposite:
		return fmt.Sprintf("composite, %d children", len(g.Composite.Elements))
	default:
		return "unknown"
	}
}

func attributeLabel(d index.AttributeData) string {
	switch d.Kind {
	case index.DataBoolean:
		return fmt.Sprintf("boolean, %d values", d.Boolean.Values.Count)
	case index.DataVector2:
		return fmt.Sprintf("vector2(%d), %d values", d.Vector2.Width, d.Vector2.Values.Count)
	case index.DataVector3:
		return fmt.Sprintf("vector3(%d), %d values", d.Vector3.Width, d.Vector3.Values.Count)
	case index.DataText:
		return fmt.Sprintf("text, %d values", d.Text.Values.Count)
	case index.DataColor:
		return fmt.Sprintf("color, %d values", d.Color.Values.Count)
	case index.DataNumber:
		return fmt.Sprintf("number, %d values", d.Number.Values.Count)
	case index.DataCategory:
		return fmt.Sprintf("category, %d names", len(d.Category.Names))
	case index.DataMappedTexture:
		return "mapped_texture"
	case index.DataProjectedTexture:
		return "projected_texture"
	default:
		return "unknown"
	}
}
