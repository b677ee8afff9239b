package hcl

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL level loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under the given paths, merges them in path
// order and validates the result.
func (l *Loader) Load(ctx context.Context, env config.Env, paths ...string) (*config.Level, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := evalContext(env)
	level := &config.Level{Name: strings.TrimSuffix(filepath.Base(files[0]), ".hcl")}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part, diags := translate(&root, evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		level.Merge(part)
		logger.Debug("Decoded level file.", "path", file,
			"platforms", len(part.Platforms), "lifts", len(part.Lifts), "spawns", len(part.Spawns))
	}

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", level.Name, err)
	}

	logger.Debug("HCL loading complete.", "level", level.Name,
		"platforms", len(level.Platforms), "lifts", len(level.Lifts),
		"hazards", len(level.Hazards), "spawns", len(level.Spawns))
	return level, nil
}

// findAllHCLFiles resolves every path and drops duplicates.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		files, err := fsutil.ResolveFiles(p, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}
