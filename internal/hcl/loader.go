// Package hcl reads prototype definition files. Each `prototype "<type>"
// "<name>"` block body is evaluated into one dynamic definition table with
// the two labels merged in under "type" and "name", which is all the engine
// ever sees of the file format.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/ctxlog"
	"github.com/vk/prototable/internal/fsutil"
)

// Loader parses .hcl definition files into dynamic definition tables.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new definition file loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "prototype", LabelNames: []string{"type", "name"}},
	},
}

// LoadDir recursively loads every .hcl file under path and returns the
// definitions in file order, files sorted lexicographically.
func (l *Loader) LoadDir(ctx context.Context, path string) ([]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading definition files...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl definition files found in path", "path", path)
		return nil, nil
	}

	var defs []cty.Value
	for _, filePath := range filePaths {
		file, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}
		fileDefs, err := l.definitions(file.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		defs = append(defs, fileDefs...)
		logger.Debug("Loaded definitions from file.", "file", filePath, "count", len(fileDefs))
	}
	return defs, nil
}

func (l *Loader) definitions(body hcl.Body) ([]cty.Value, error) {
	content, diags := body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var defs []cty.Value
	for _, block := range content.Blocks {
		def, err := l.definition(block)
		if err != nil {
			return nil, fmt.Errorf("prototype %q %q: %w", block.Labels[0], block.Labels[1], err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// definition evaluates one block body statically. Definition files are pure
// data: expressions may not reference variables or call functions.
func (l *Loader) definition(block *hcl.Block) (cty.Value, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, diags
	}

	vals := make(map[string]cty.Value, len(attrs)+2)
	for name, attr := range attrs {
		if name == "type" || name == "name" {
			return cty.NilVal, fmt.Errorf("%s: attribute %q is reserved for the block labels", attr.NameRange, name)
		}
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		vals[name] = v
	}
	vals["type"] = cty.StringVal(block.Labels[0])
	vals["name"] = cty.StringVal(block.Labels[1])
	return cty.ObjectVal(vals), nil
}
