package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/stlpath/internal/session"
	"github.com/philipparndt/stlpath/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	infoLongest int
	infoOpen    bool
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about an STL file and its welded surface",
	Long:  "Show format, dimensions, surface area, edge statistics, topology and decoder diagnostics.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(appConfig)
		snap, err := loadFile(s, args[0])
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), snap, analysis.AnalyzeMesh(snap.Mesh))
		return nil
	},
}

func init() {
	infoCmd.Flags().IntVarP(&infoLongest, "longest", "n", 0, "also list the N longest edges")
	infoCmd.Flags().BoolVar(&infoOpen, "open-edges", false, "also list boundary and non-manifold edges")
	rootCmd.AddCommand(infoCmd)
}

func printInfo(w io.Writer, snap *session.Snapshot, result *analysis.MeasurementResult) {
	topo := result.Topology

	fmt.Fprintln(w, "STL File Information")
	fmt.Fprintln(w, "====================")
	if snap.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", snap.Name)
	}
	fmt.Fprintf(w, "File: %s\n", snap.Source)
	fmt.Fprintf(w, "Format: %s\n", snap.Format)
	if snap.Partial {
		fmt.Fprintln(w, "Warning: file is truncated, only complete records were read")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Faces: %d\n", topo.Faces)
	fmt.Fprintf(w, "  Vertices: %d\n", topo.Vertices)
	fmt.Fprintf(w, "  Edges: %d\n", topo.Edges)
	fmt.Fprintf(w, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if topo.Faces > 0 {
		fmt.Fprintln(w, "Bounding Box:")
		fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(w, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintln(w, "Dimensions:")
		fmt.Fprintf(w, "  Width (X): %.6f units\n", result.Dimensions.X)
		fmt.Fprintf(w, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
		fmt.Fprintf(w, "  Height (Z): %.6f units\n", result.Dimensions.Z)
		fmt.Fprintf(w, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

		fmt.Fprintln(w, "Edge Lengths:")
		fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinEdgeLength)
		fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxEdgeLength)
		fmt.Fprintf(w, "  Average: %.6f units\n\n", result.AvgEdgeLength)
	}

	fmt.Fprintln(w, "Topology:")
	fmt.Fprintf(w, "  Adjacent face pairs: %d\n", topo.AdjacentPairs)
	fmt.Fprintf(w, "  Components: %d\n", topo.Components)
	fmt.Fprintf(w, "  Boundary edges: %d\n", topo.BoundaryEdges)
	fmt.Fprintf(w, "  Non-manifold edges: %d\n", topo.NonManifoldEdges)
	fmt.Fprintf(w, "  Degenerate faces: %d\n", topo.DegenerateFaces)
	fmt.Fprintf(w, "  Flipped normals: %d\n", topo.FlippedNormals)
	fmt.Fprintf(w, "  Watertight: %t\n", topo.Watertight())

	if infoLongest > 0 {
		fmt.Fprintf(w, "\nLongest Edges:\n")
		printEdges(w, analysis.FindLongestEdges(result, infoLongest))
	}
	if infoOpen {
		fmt.Fprintf(w, "\nOpen Edges:\n")
		printEdges(w, analysis.OpenEdges(result))
	}

	if len(snap.Diagnostics) > 0 {
		fmt.Fprintln(w, "\nDiagnostics:")
		for _, d := range snap.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
}

func printEdges(w io.Writer, edges []analysis.EdgeInfo) {
	if len(edges) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for i, e := range edges {
		fmt.Fprintf(w, "  %d. %.6f units  %s -> %s  (faces: %d)\n",
			i+1, e.Length, analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.Faces)
	}
}
