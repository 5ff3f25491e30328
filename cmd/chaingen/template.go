package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// templateData is the input passed to the Go template.
type templateData struct {
	Source  string
	Package string
	Import  ImportSpec
	Chain   string
	Levels  []levelData
}

type levelData struct {
	Name        string
	Kind        string
	Parent      string
	ParentAlias string
	Sealed      bool
	Fields      []fieldData
}

// Recv is the builder receiver type of the level, without the pointer.
func (l levelData) Recv() string {
	if l.Sealed {
		return l.Name + "Builder"
	}
	return l.Name + "Builder[S]"
}

// Ret is what the level's setters return.
func (l levelData) Ret() string {
	if l.Sealed {
		return "*" + l.Name + "Builder"
	}
	return "S"
}

type fieldData struct {
	Name string
	Var  string
	Key  string
	Type string
}

// IsString reports whether the field takes part in registry defaults.
func (f fieldData) IsString() bool { return f.Type == "string" }

// buildTemplateData turns a validated spec into template input. owner may be
// nil when no owner file was found.
func buildTemplateData(spec Spec, specPath string, owner *ownerFile) (templateData, error) {
	pkg := spec.Package
	var ownerImports []ImportSpec
	if owner != nil {
		ownerImports = owner.Imports
		switch {
		case pkg == "":
			pkg = owner.Package
		case pkg != owner.Package:
			return templateData{}, fmt.Errorf("spec package %q does not match owner file %s (package %q)", pkg, owner.Path, owner.Package)
		}
	}
	if pkg == "" {
		return templateData{}, fmt.Errorf("spec has no package and no owner file was found")
	}

	chainPath := spec.ChainImport
	if strings.TrimSpace(chainPath) == "" {
		chainPath = defaultChainImport
	}
	imp, ident := resolveChainImport(ownerImports, chainPath)

	data := templateData{
		Source:  filepath.Base(specPath),
		Package: pkg,
		Import:  imp,
		Chain:   ident,
		Levels:  make([]levelData, 0, len(spec.Levels)),
	}

	for i, lvl := range spec.Levels {
		ld := levelData{
			Name:   lvl.Name,
			Kind:   lowerFirst(lvl.Name),
			Sealed: lvl.Sealed,
		}
		if i > 0 {
			ld.Parent = spec.Levels[i-1].Name
			ld.ParentAlias = lowerFirst(ld.Parent) + "Entity"
		}
		for _, f := range lvl.Fields {
			key := lowerFirst(f.Name)
			v := key
			if token.IsKeyword(v) {
				v += "_"
			}
			ld.Fields = append(ld.Fields, fieldData{Name: f.Name, Var: v, Key: key, Type: f.Type})
		}
		data.Levels = append(data.Levels, ld)
	}

	return data, nil
}

// render executes the template and gofmt's the result.
func render(data templateData) ([]byte, error) {
	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// genTemplate is the Go source template for one chain.
var genTemplate = template.Must(
	template.New("chaingen").Parse(`// Code generated by chaingen from {{.Source}}; DO NOT EDIT.

package {{.Package}}

import {{if .Import.Alias}}{{.Import.Alias}} {{end}}"{{.Import.Path}}"

const (
{{- range .Levels}}
	Kind{{.Name}} {{$.Chain}}.Kind = "{{.Kind}}"
{{- end}}
)

const (
{{- range .Levels}}{{range .Fields}}
	Field{{.Name}} {{$.Chain}}.Field = "{{.Key}}"
{{- end}}{{end}}
)
{{range $lvl := .Levels}}
{{- if .Parent}}
type {{.ParentAlias}} = {{.Parent}}Entity
{{end}}
// {{.Name}}Entity is an immutable value built by {{.Name}}Builder.
type {{.Name}}Entity struct {
{{- if .Parent}}
	{{.ParentAlias}}
{{end}}
{{- range .Fields}}
	{{.Var}} {{.Type}}
{{- end}}
}
{{range .Fields}}
func (e {{$lvl.Name}}Entity) {{.Name}}() {{.Type}} { return e.{{.Var}} }
{{end}}
{{- if .Parent}}
// {{.Parent}} returns the {{.Kind}} value's {{.Parent}}Entity part.
func (e {{.Name}}Entity) {{.Parent}}() {{.Parent}}Entity { return e.{{.ParentAlias}} }
{{end}}
{{- if .Sealed}}
// {{.Name}}Builder closes the chain; it is its own self type.
type {{.Name}}Builder struct {
	{{.Parent}}Builder[*{{.Name}}Builder]
{{- else}}
// {{.Name}}Builder collects {{.Name}}Entity fields. S is the concrete builder
// closing the chain.
type {{.Name}}Builder[S any] struct {
{{- if .Parent}}
	{{.Parent}}Builder[S]
{{- else}}
	self {{$.Chain}}.Self[S]
	core {{$.Chain}}.Core
{{- end}}
{{- end}}
{{range .Fields}}
	{{.Var}} {{.Type}}
{{- end}}
}
{{if not .Parent}}
// Bind discharges the self-type contract; call it once from the concrete builder.
func (b *{{.Recv}}) Bind(self S, opts ...{{$.Chain}}.Option) {
	b.self.Bind(self)
	b.core.Apply(opts...)
}

func (b *{{.Recv}}) Self() S { return b.self.Get() }

func (b *{{.Recv}}) Core() *{{$.Chain}}.Core {
	b.self.Get()
	return &b.core
}

func (b *{{.Recv}}) State() {{$.Chain}}.State { return b.core.State() }

func (b *{{.Recv}}) Builds() int { return b.core.Builds() }
{{end}}
{{- range .Fields}}
func (b *{{$lvl.Recv}}) Set{{.Name}}(v {{.Type}}) {{$lvl.Ret}} {
	s := b.Self()
	b.{{.Var}} = v
	b.Core().Mark(Field{{.Name}})
	return s
}
{{end}}
func (b *{{.Recv}}) Snapshot() {{.Name}}Entity {
	return {{.Name}}Entity{
{{- if .Parent}}
		{{.ParentAlias}}: b.{{.Parent}}Builder.Snapshot(),
{{- end}}
{{- range .Fields}}
		{{.Var}}: b.{{.Var}},
{{- end}}
	}
}

func (b *{{.Recv}}) Build() {{.Name}}Entity {
	return {{$.Chain}}.Build(b.Core(), Kind{{.Name}}, b.Snapshot)
}

func (b *{{.Recv}}) TryBuild() ({{.Name}}Entity, error) {
	return {{$.Chain}}.TryBuild(b.Core(), Kind{{.Name}}, b.Snapshot)
}

func (b *{{.Recv}}) BuildWith(reg {{$.Chain}}.Registry) ({{.Name}}Entity, error) {
	return {{$.Chain}}.BuildWith(b.Core(), Kind{{.Name}}, reg, b.Slots(), b.Snapshot)
}

func (b *{{.Recv}}) Slots() []{{$.Chain}}.Slot {
{{- if .Parent}}
	slots := b.{{.Parent}}Builder.Slots()
{{- else}}
	var slots []{{$.Chain}}.Slot
{{- end}}
{{- range .Fields}}{{if .IsString}}
	slots = append(slots, {{$.Chain}}.Slot{Field: Field{{.Name}}, Value: &b.{{.Var}}})
{{- end}}{{end}}
	return slots
}
{{if .Sealed}}
func New{{.Name}}Builder(opts ...{{$.Chain}}.Option) *{{.Name}}Builder {
	b := &{{.Name}}Builder{}
	b.Bind(b, opts...)
	return b
}
{{else}}
// {{.Name}}Leaf is the one concrete builder of {{.Name}}Entity.
type {{.Name}}Leaf struct {
	{{.Name}}Builder[*{{.Name}}Leaf]
}

func New{{.Name}}Builder(opts ...{{$.Chain}}.Option) *{{.Name}}Leaf {
	b := &{{.Name}}Leaf{}
	b.Bind(b, opts...)
	return b
}
{{end}}
{{- end}}`),
)
