package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	vecType  = cty.List(cty.Number)
	pathType = cty.List(vecType)
)

// evalContext exposes the agent's dimensions and a few numeric helpers to
// level expressions.
func evalContext(env config.Env) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"agent": cty.ObjectVal(map[string]cty.Value{
				"radius":   cty.NumberFloatVal(env.AgentRadius),
				"diameter": cty.NumberFloatVal(2 * env.AgentRadius),
			}),
		},
		Functions: map[string]function.Function{
			"abs":   stdlib.AbsoluteFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
			"max":   stdlib.MaxFunc,
			"min":   stdlib.MinFunc,
		},
	}
}

// isNull reports whether an optional attribute was left out. gohcl fills
// missing hcl.Expression fields with a static null.
func isNull(expr hcl.Expression, ctx *hcl.EvalContext) bool {
	if expr == nil {
		return true
	}
	val, diags := expr.Value(ctx)
	return !diags.HasErrors() && val.IsNull()
}

// decodeVec evaluates expr as an [x, y] pair.
func decodeVec(expr hcl.Expression, ctx *hcl.EvalContext) (geom.Vec2, hcl.Diagnostics) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return geom.Vec2{}, diags
	}
	var xy []float64
	if err := decodeValue(val, vecType, &xy); err != nil {
		return geom.Vec2{}, vecDiag(expr, err.Error())
	}
	if len(xy) != 2 {
		return geom.Vec2{}, vecDiag(expr, fmt.Sprintf("expected 2 numbers, got %d", len(xy)))
	}
	return geom.V(xy[0], xy[1]), nil
}

// decodePath evaluates expr as a list of [x, y] pairs.
func decodePath(expr hcl.Expression, ctx *hcl.EvalContext) ([]geom.Vec2, hcl.Diagnostics) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	var pts [][]float64
	if err := decodeValue(val, pathType, &pts); err != nil {
		return nil, vecDiag(expr, err.Error())
	}
	out := make([]geom.Vec2, 0, len(pts))
	for i, xy := range pts {
		if len(xy) != 2 {
			return nil, vecDiag(expr, fmt.Sprintf("point %d: expected 2 numbers, got %d", i, len(xy)))
		}
		out = append(out, geom.V(xy[0], xy[1]))
	}
	return out, nil
}

func decodeValue(val cty.Value, ty cty.Type, target any) error {
	if val.IsNull() {
		return fmt.Errorf("value must not be null")
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("value must be known")
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

func vecDiag(expr hcl.Expression, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid coordinates",
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}
