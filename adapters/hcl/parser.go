// Package hcl reads named transformation definitions from HCL files.
//
// A definition file looks like:
//
//	variables {
//	  thumb = 150
//	}
//
//	transformation "avatar" {
//	  stage {
//	    crop    = "thumb"
//	    gravity = "face"
//	    width   = var.thumb
//	    height  = var.thumb
//	  }
//	  stage {
//	    radius = "max"
//	  }
//	}
//
// Stage attributes are the flat option names accepted by the legacy
// translator.
package hcl

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"cldurl/core/legacy"
	"cldurl/core/transformation"
	cerrors "cldurl/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "variables"},
		{Type: "transformation", LabelNames: []string{"name"}},
	},
}

var definitionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "raw"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "stage"},
	},
}

// Definition is one named transformation
type Definition struct {
	Name   string
	Stages []legacy.Options
	// Raw is appended verbatim after the stages
	Raw string

	SourceFile string
	SourceLine int
}

// Options returns the definition as a legacy option map
func (d Definition) Options() legacy.Options {
	stages := make([]interface{}, 0, len(d.Stages))
	for _, s := range d.Stages {
		stages = append(stages, map[string]interface{}(s.Clone()))
	}
	opts := legacy.Options{"transformation": stages}
	if d.Raw != "" {
		opts["raw_transformation"] = d.Raw
	}
	return opts
}

// Transformation translates the definition
func (d Definition) Transformation() (*transformation.Transformation, error) {
	return legacy.Translate(d.Options())
}

// File holds the definitions of one source file
type File struct {
	Path        string
	Definitions map[string]Definition
}

// Names returns the definition names in sorted order
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Definitions))
	for name := range f.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the definition called name
func (f *File) Get(name string) (Definition, error) {
	d, ok := f.Definitions[name]
	if !ok {
		return Definition{}, cerrors.Inputf("transformation %q is not defined in %s", name, f.Path)
	}
	return d, nil
}

// Parser parses definition files
type Parser struct {
	parser *hclparse.Parser
	vars   map[string]interface{}
}

// NewParser creates a parser. vars are visible as var.<name> and take
// precedence over values of the file's variables block.
func NewParser(vars map[string]interface{}) *Parser {
	return &Parser{
		parser: hclparse.NewParser(),
		vars:   vars,
	}
}

// ParseFile reads and parses path
func (p *Parser) ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.TypeInput, "reading transformation file", err)
	}
	return p.Parse(src, path)
}

// Parse parses HCL source; filename is used in diagnostics
func (p *Parser) Parse(src []byte, filename string) (*File, error) {
	hclFile, diags := p.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, diags := hclFile.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	ctx, err := p.evalContext(filename, content.Blocks.OfType("variables"))
	if err != nil {
		return nil, err
	}

	file := &File{Path: filename, Definitions: make(map[string]Definition)}
	for _, block := range content.Blocks.OfType("transformation") {
		def, err := parseDefinition(block, filename, ctx)
		if err != nil {
			return nil, err
		}
		if prev, ok := file.Definitions[def.Name]; ok {
			return nil, cerrors.Inputf("%s:%d: transformation %q already defined on line %d",
				filename, def.SourceLine, def.Name, prev.SourceLine)
		}
		file.Definitions[def.Name] = def
	}
	return file, nil
}

func (p *Parser) evalContext(filename string, blocks hcl.Blocks) (*hcl.EvalContext, error) {
	values := make(map[string]cty.Value)

	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diagError(filename, diags)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diagError(filename, diags)
			}
			values[name] = val
		}
	}

	for name, v := range p.vars {
		val, err := goToCty(v)
		if err != nil {
			return nil, cerrors.Inputf("variable %s: %v", name, err)
		}
		values[name] = val
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(values)},
	}, nil
}

func parseDefinition(block *hcl.Block, filename string, ctx *hcl.EvalContext) (Definition, error) {
	def := Definition{
		Name:       block.Labels[0],
		SourceFile: filename,
		SourceLine: block.DefRange.Start.Line,
	}
	if def.Name == "" {
		return Definition{}, cerrors.Inputf("%s:%d: transformation name must not be empty", filename, def.SourceLine)
	}

	content, diags := block.Body.Content(definitionSchema)
	if diags.HasErrors() {
		return Definition{}, diagError(filename, diags)
	}

	if attr, ok := content.Attributes["raw"]; ok {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return Definition{}, diagError(filename, diags)
		}
		raw, err := ctyToGo(val, def.Name+".raw")
		if err != nil {
			return Definition{}, cerrors.Wrap(cerrors.TypeInput, filename, err)
		}
		s, ok := raw.(string)
		if !ok && raw != nil {
			return Definition{}, cerrors.Inputf("%s:%d: raw must be a string", filename, attr.Range.Start.Line)
		}
		def.Raw = s
	}

	for i, stage := range content.Blocks.OfType("stage") {
		opts, err := parseStage(stage, filename, fmt.Sprintf("%s.stage[%d]", def.Name, i), ctx)
		if err != nil {
			return Definition{}, err
		}
		def.Stages = append(def.Stages, opts)
	}
	return def, nil
}

func parseStage(block *hcl.Block, filename, context string, ctx *hcl.EvalContext) (legacy.Options, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	opts := make(legacy.Options, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return nil, diagError(filename, diags)
		}
		v, err := ctyToGo(val, context+"."+name)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.TypeInput, fmt.Sprintf("%s:%d", filename, attr.Range.Start.Line), err)
		}
		opts[name] = v
	}
	return opts, nil
}

// diagError reports the first error diagnostic with its position
func diagError(filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		return cerrors.Inputf("%s:%d: %s: %s", filename, line, diag.Summary, diag.Detail)
	}
	return cerrors.Inputf("%s: %s", filename, diags.Error())
}
