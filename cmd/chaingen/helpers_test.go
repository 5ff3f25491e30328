package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sghaida/fluent/pkg/log"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// entitySpec mirrors testdata/chain.* after validation.
func entitySpec() Spec {
	return Spec{
		Package: "entity",
		Levels: []Level{
			{Name: "Root", Fields: []FieldSpec{{Name: "Prop1", Type: "string"}, {Name: "Prop2", Type: "string"}}},
			{Name: "Derived", Fields: []FieldSpec{{Name: "SubProp1", Type: "string"}, {Name: "SubProp2", Type: "string"}}},
			{Name: "Sealed", Sealed: true, Fields: []FieldSpec{{Name: "FinalProp1", Type: "string"}, {Name: "FinalProp2", Type: "string"}}},
		},
	}
}

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// copyTestdata copies testdata/name into dir and returns the new path.
func copyTestdata(t *testing.T, dir, name string) string {
	t.Helper()
	return writeTempFile(t, dir, name, readFileString(t, filepath.Join("testdata", name)))
}

// declNames parses generated source and returns its top-level names. Methods
// are keyed as "Type.Method".
func declNames(t *testing.T, src []byte) map[string]bool {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						names[n.Name] = true
					}
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil && len(d.Recv.List) == 1 {
				name = recvTypeName(d.Recv.List[0].Type) + "." + name
			}
			names[name] = true
		}
	}
	return names
}

func recvTypeName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.StarExpr:
		return recvTypeName(x.X)
	case *ast.IndexExpr:
		return recvTypeName(x.X)
	case *ast.Ident:
		return x.Name
	}
	return fmt.Sprintf("%T", expr)
}

// recordingLogger keeps every message; safe for the watch goroutine.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingLogger) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingLogger) Debug(msg string, _ ...log.Field) { r.record(msg) }
func (r *recordingLogger) Info(msg string, _ ...log.Field)  { r.record(msg) }
func (r *recordingLogger) Warn(msg string, _ ...log.Field)  { r.record(msg) }
func (r *recordingLogger) Error(msg string, _ ...log.Field) { r.record(msg) }

func (r *recordingLogger) has(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m == msg {
			return true
		}
	}
	return false
}

//
// -----------------------------------------------------------------------------
// fileOps helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeIfChanged tests.
type fakeTempFile struct {
	fileName string
	writeErr error
	syncErr  error
	closeErr error
	written  []byte
	closed   bool
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeTempFile) Sync() error { return f.syncErr }

func (f *fakeTempFile) Close() error {
	f.closed = true
	return f.closeErr
}
