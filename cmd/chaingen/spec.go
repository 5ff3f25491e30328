package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// defaultChainImport is the runtime package generated code builds on.
const defaultChainImport = "github.com/sghaida/fluent/chain"

// Spec is the full input schema consumed by the generator.
type Spec struct {
	// Package is the generated file's package. Optional when an owner file exists.
	Package string `json:"package" yaml:"package" toml:"package" hcl:"package,optional"`

	// ChainImport overrides the import path of the chain runtime package.
	ChainImport string `json:"chainImport" yaml:"chainImport" toml:"chainImport" hcl:"chain_import,optional"`

	// Levels are ordered from the root of the hierarchy down.
	Levels []Level `json:"levels" yaml:"levels" toml:"levels" hcl:"level,block"`
}

// Level is one value type of the hierarchy plus its builder.
type Level struct {
	Name   string      `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Sealed bool        `json:"sealed" yaml:"sealed" toml:"sealed" hcl:"sealed,optional"`
	Fields []FieldSpec `json:"fields" yaml:"fields" toml:"fields" hcl:"field,block"`
}

// FieldSpec is one field a level adds.
type FieldSpec struct {
	Name string `json:"name" yaml:"name" toml:"name" hcl:"name,label"`

	// Type is the Go type of the field; empty means string.
	Type string `json:"type" yaml:"type" toml:"type" hcl:"type,optional"`
}

// reservedNames are methods every generated builder or value already has.
var reservedNames = map[string]struct{}{
	"Bind": {}, "Self": {}, "Core": {}, "State": {}, "Builds": {},
	"Snapshot": {}, "Build": {}, "TryBuild": {}, "BuildWith": {}, "Slots": {},
}

// loadSpec reads and decodes a spec file; the decoder is picked by extension.
func loadSpec(specPath string) (Spec, error) {
	var spec Spec

	src, err := os.ReadFile(specPath)
	if err != nil {
		return spec, err
	}

	switch ext := strings.ToLower(filepath.Ext(specPath)); ext {
	case ".json":
		err = json.Unmarshal(src, &spec)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(src, &spec)
	case ".toml":
		err = toml.Unmarshal(src, &spec)
	case ".hcl":
		err = decodeHCL(specPath, src, &spec)
	default:
		return spec, fmt.Errorf("unsupported spec format %q (want .json, .yaml, .yml, .toml or .hcl)", ext)
	}
	if err != nil {
		return spec, fmt.Errorf("decode %s: %w", specPath, err)
	}
	return spec, nil
}

func decodeHCL(filename string, src []byte, spec *Spec) error {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return diags
	}
	if diags := gohcl.DecodeBody(file.Body, nil, spec); diags.HasErrors() {
		return diags
	}
	return nil
}

// validateSpec checks the semantic rules of a decoded spec. It fills in
// defaults (field types) in place.
func validateSpec(spec *Spec) error {
	if spec.Package != "" && !token.IsIdentifier(spec.Package) {
		return fmt.Errorf("package %q is not a valid identifier", spec.Package)
	}
	if len(spec.Levels) == 0 {
		return fmt.Errorf("spec must declare at least one level")
	}

	levelNames := make(map[string]struct{}, len(spec.Levels))
	for _, lvl := range spec.Levels {
		levelNames[lvl.Name] = struct{}{}
	}

	seenLevels := make(map[string]struct{}, len(spec.Levels))
	seenFields := make(map[string]string)

	for i := range spec.Levels {
		lvl := &spec.Levels[i]

		if !isExportedIdent(lvl.Name) {
			return fmt.Errorf("level %d: name %q must be an exported Go identifier", i, lvl.Name)
		}
		if _, ok := seenLevels[lvl.Name]; ok {
			return fmt.Errorf("duplicate level name: %s", lvl.Name)
		}
		seenLevels[lvl.Name] = struct{}{}

		if lvl.Sealed && i == 0 {
			return fmt.Errorf("level %s: the first level cannot be sealed", lvl.Name)
		}
		if lvl.Sealed && i != len(spec.Levels)-1 {
			return fmt.Errorf("level %s: only the last level may be sealed", lvl.Name)
		}

		for j := range lvl.Fields {
			f := &lvl.Fields[j]
			if !isExportedIdent(f.Name) {
				return fmt.Errorf("level %s: field name %q must be an exported Go identifier", lvl.Name, f.Name)
			}
			if _, ok := reservedNames[f.Name]; ok {
				return fmt.Errorf("level %s: field name %s is reserved", lvl.Name, f.Name)
			}
			if _, ok := levelNames[f.Name]; ok {
				return fmt.Errorf("level %s: field name %s collides with a level name", lvl.Name, f.Name)
			}
			if strings.HasSuffix(f.Name, "Entity") {
				if _, ok := levelNames[strings.TrimSuffix(f.Name, "Entity")]; ok {
					return fmt.Errorf("level %s: field name %s collides with a value type", lvl.Name, f.Name)
				}
			}
			if owner, ok := seenFields[f.Name]; ok {
				return fmt.Errorf("duplicate field name %s (levels %s and %s)", f.Name, owner, lvl.Name)
			}
			seenFields[f.Name] = lvl.Name

			f.Type = strings.TrimSpace(f.Type)
			if f.Type == "" {
				f.Type = "string"
			}
			if err := checkFieldType(f.Type); err != nil {
				return fmt.Errorf("level %s: field %s: %w", lvl.Name, f.Name, err)
			}
		}
	}

	return nil
}

// checkFieldType accepts Go type expressions whose values are copied by
// assignment. Slices, maps, pointers, channels and functions are rejected,
// also inside arrays and struct literals: values built from one builder
// would share their storage. Named types are trusted.
func checkFieldType(typ string) error {
	expr, err := parser.ParseExpr(typ)
	if err != nil {
		return fmt.Errorf("type %q is not a Go type: %w", typ, err)
	}
	return checkTypeExpr(typ, expr)
}

func checkTypeExpr(typ string, expr ast.Expr) error {
	switch t := expr.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.InterfaceType, *ast.IndexExpr, *ast.IndexListExpr:
		return nil
	case *ast.ParenExpr:
		return checkTypeExpr(typ, t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return fmt.Errorf("type %s holds a slice; builds would share its backing array", typ)
		}
		return checkTypeExpr(typ, t.Elt)
	case *ast.StructType:
		for _, f := range t.Fields.List {
			if err := checkTypeExpr(typ, f.Type); err != nil {
				return err
			}
		}
		return nil
	case *ast.MapType:
		return fmt.Errorf("type %s holds a map; builds would share it", typ)
	case *ast.StarExpr:
		return fmt.Errorf("type %s holds a pointer; builds would share its target", typ)
	case *ast.ChanType:
		return fmt.Errorf("type %s holds a channel", typ)
	case *ast.FuncType:
		return fmt.Errorf("type %s holds a function", typ)
	default:
		return fmt.Errorf("type %q is not a Go type", typ)
	}
}

func isExportedIdent(name string) bool {
	return token.IsIdentifier(name) && token.IsExported(name)
}
