package main

import (
	"fmt"

	"github.com/philipparndt/probeview/internal/probe"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/philipparndt/probeview/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	exportASCII      bool
	exportWithTarget bool
	exportWithLead   bool
	exportVerify     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <out.stl>",
	Short: "Write the probe geometry as STL",
	Long: `Write the contacts, and optionally the lead and the target volume, as a single
STL file in world coordinates. Label decals are not exported.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportASCII, "ascii", false, "write ASCII instead of binary STL")
	exportCmd.Flags().BoolVar(&exportWithTarget, "with-target", false, "include the target volume")
	exportCmd.Flags().BoolVar(&exportWithLead, "with-lead", true, "include the lead capsule")
	exportCmd.Flags().BoolVar(&exportVerify, "verify", false, "read the written file back and compare it with the model")
	rootCmd.AddCommand(exportCmd)
}

// exportModel collects the selected nodes of a session into one model
func exportModel(session *probe.Session, withLead, withTarget bool) *stl.Model {
	model := stl.NewModel("probeview")
	add := func(n *scene.Node) {
		model.AddMesh(n.Mesh, n.WorldMatrix())
	}

	for _, seg := range session.Assembly.Segments {
		add(seg.Node)
	}
	if withLead {
		add(session.Assembly.Capsule)
	}
	if withTarget {
		add(session.Volume)
	}
	return model
}

// verifyExport parses a written STL file and checks that it holds the same
// triangles and extent as model
func verifyExport(path string, model *stl.Model) error {
	parsed, err := stl.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", path, err)
	}
	if got, want := parsed.TriangleCount(), model.TriangleCount(); got != want {
		return fmt.Errorf("%s holds %d triangles, expected %d", path, got, want)
	}
	got, want := parsed.BoundingBox(), model.BoundingBox()
	if d := got.Min.Sub(want.Min).Len() + got.Max.Sub(want.Max).Len(); d > 1e-4 {
		return fmt.Errorf("%s bounds differ from the model by %g", path, d)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
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

	model := exportModel(session, exportWithLead, exportWithTarget)
	if err := stl.Write(args[0], model, exportASCII); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	log.Infof("wrote %d triangles to %s", model.TriangleCount(), args[0])

	if exportVerify {
		if err := verifyExport(args[0], model); err != nil {
			return err
		}
		log.Infof("verified %s", args[0])
	}
	return nil
}
