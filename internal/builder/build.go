package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/node"
)

// Populate decomposes every platform in the input into nodes under root and
// links them. Static platforms are added before moving ones.
func Populate(ctx context.Context, root *node.Node, in Input) error {
	logger := ctxlog.FromContext(ctx)
	if root == nil {
		return errors.New("populate: root node is nil")
	}
	if in.Probe == nil {
		return errors.New("populate: feasibility probe is nil")
	}
	if in.Radius <= 0 {
		return fmt.Errorf("populate: agent radius must be positive, got %v", in.Radius)
	}
	logger.Debug("Populate: Starting graph construction.",
		"static", len(in.Static), "moving", len(in.Moving), "radius", in.Radius)

	l := &linker{root: root, probe: in.Probe, penalties: in.Penalties}
	walkEdges, crossEdges := 0, 0

	platforms := make([]Platform, 0, len(in.Static)+len(in.Moving))
	platforms = append(platforms, in.Static...)
	platforms = append(platforms, in.Moving...)

	for _, p := range platforms {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("populate interrupted: %w", err)
		}

		created := createPlatformNode(root, p, in.Radius)
		walkEdges += linkInternal(created, in.Penalties)

		siblings := root.Children()
		for _, earlier := range siblings[:len(siblings)-1] {
			crossEdges += l.linkBoth(created, earlier)
		}
		logger.Debug("Populate: Platform added.",
			"name", p.Name, "address", created.Address().String(), "leaves", len(created.Children()))
	}

	logger.Info("Graph populated.",
		"platforms", len(root.Children()), "walk_edges", walkEdges, "cross_edges", crossEdges)
	return nil
}
