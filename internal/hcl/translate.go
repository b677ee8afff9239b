package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/jumpgridgo/internal/config"
)

// translate converts one decoded file into the agnostic model.
func translate(root *fileRoot, ctx *hcl.EvalContext) (*config.Level, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	lvl := &config.Level{}

	if w := root.World; w != nil {
		if w.Name != nil {
			lvl.Name = *w.Name
		}
		if !isNull(w.Gravity, ctx) {
			g, d := decodeVec(w.Gravity, ctx)
			diags = append(diags, d...)
			lvl.Gravity = g
		}
		if w.KillPlane != nil {
			lvl.KillPlane = *w.KillPlane
		}
	}

	for _, b := range root.Platforms {
		box, d := translateBox(b, ctx)
		diags = append(diags, d...)
		lvl.Platforms = append(lvl.Platforms, box)
	}
	for _, b := range root.Hazards {
		box, d := translateBox(b, ctx)
		diags = append(diags, d...)
		lvl.Hazards = append(lvl.Hazards, box)
	}

	for _, b := range root.Lifts {
		size, d1 := decodeVec(b.Size, ctx)
		from, d2 := decodeVec(b.From, ctx)
		to, d3 := decodeVec(b.To, ctx)
		diags = append(diags, d1...)
		diags = append(diags, d2...)
		diags = append(diags, d3...)
		lift := config.Lift{Name: b.Name, Width: size.X, Height: size.Y, From: from, To: to, Speed: b.Speed}
		if b.Dampen != nil {
			lift.Dampen = *b.Dampen
		}
		lvl.Lifts = append(lvl.Lifts, lift)
	}

	for _, b := range root.Spawns {
		pos, d := decodeVec(b.Position, ctx)
		diags = append(diags, d...)
		lvl.Spawns = append(lvl.Spawns, config.Spawn{Name: b.Name, Position: pos})
	}

	if g := root.Goal; g != nil {
		pos, d := decodeVec(g.Position, ctx)
		diags = append(diags, d...)
		lvl.Goal.Position = pos
		if !isNull(g.Patrol, ctx) {
			patrol, d := decodePath(g.Patrol, ctx)
			diags = append(diags, d...)
			lvl.Goal.Patrol = patrol
		}
		if g.Dwell != nil {
			lvl.Goal.Dwell = *g.Dwell
		}
	}

	return lvl, diags
}

func translateBox(b *boxBlock, ctx *hcl.EvalContext) (config.Box, hcl.Diagnostics) {
	center, d1 := decodeVec(b.Center, ctx)
	size, d2 := decodeVec(b.Size, ctx)
	return config.Box{Name: b.Name, Center: center, Width: size.X, Height: size.Y}, append(d1, d2...)
}
