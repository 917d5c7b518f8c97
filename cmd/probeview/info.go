package main

import (
	"fmt"

	"github.com/philipparndt/probeview/internal/probe"
	"github.com/philipparndt/probeview/pkg/analysis"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/philipparndt/probeview/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display geometry information about the probe",
	Long:  "Show per-contact statistics: triangle count, contact surface area, enclosed volume, bounds and world position.",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// nodeModel converts one scene node to an STL model in world space
func nodeModel(n *scene.Node) *stl.Model {
	model := stl.NewModel(n.Name)
	model.AddMesh(n.Mesh, n.WorldMatrix())
	return model
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.ProbeOptions()
	if err != nil {
		return err
	}
	session, err := probe.Compose(opts)
	if err != nil {
		return err
	}
	assembly := session.Assembly

	fmt.Println("Probe Information")
	fmt.Println("=================")
	fmt.Printf("Config: %s\n", configPath)
	fmt.Printf("Palette: %s\n", session.Palette)
	fmt.Printf("Offset: %.4f\n\n", assembly.Offset())

	for _, seg := range assembly.Segments {
		result := analysis.AnalyzeModel(nodeModel(seg.Node))
		gap := "full"
		if seg.Label.HasGap {
			gap = "gapped"
		}

		fmt.Printf("Contact %s (slot %d, %s):\n", seg.Label.Text, seg.Label.Slot, gap)
		fmt.Printf("  Triangles: %d\n", result.TriangleCount)
		fmt.Printf("  Contact Area: %s\n", analysis.FormatMeasurement(result.LateralArea, "square units"))
		fmt.Printf("  Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "square units"))
		fmt.Printf("  Volume: %s\n", analysis.FormatMeasurement(result.Volume, "cubic units"))
		fmt.Printf("  Center: %s\n", analysis.FormatVector(seg.Node.WorldPosition()))
		fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Printf("  Max: %s\n\n", analysis.FormatVector(result.BoundingBox.Max))
	}

	printNode := func(title string, n *scene.Node) {
		result := analysis.AnalyzeModel(nodeModel(n))
		fmt.Printf("%s:\n", title)
		fmt.Printf("  Triangles: %d\n", result.TriangleCount)
		fmt.Printf("  Size: %s\n", analysis.FormatVector(result.Dimensions))
		fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))
	}
	printNode("Lead", assembly.Capsule)
	printNode("Target Volume", session.Volume)

	cam := session.Camera
	fmt.Println("Camera:")
	fmt.Printf("  Position: %s\n", analysis.FormatVector(cam.Position))
	fmt.Printf("  Target: %s\n", analysis.FormatVector(cam.Target))
	fmt.Printf("  Distance: %.4f\n", cam.Position.Sub(cam.Target).Len())
	fmt.Printf("  Field of View: %.1f°\n", cam.FovY)
	return nil
}
