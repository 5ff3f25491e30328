package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// ownerFile is the hand-written file whose go:generate directive runs
// chaingen. The generated file shares its package and chain import alias.
type ownerFile struct {
	Path    string
	Package string
	Imports []ImportSpec
}

// findOwnerFile returns the first .go file in packageDir, in directory
// order, carrying a //go:generate directive that runs chaingen. Tests,
// generated files and files that do not parse are skipped.
func findOwnerFile(packageDir string) (ownerFile, error) {
	entries, err := os.ReadDir(packageDir)
	if err != nil {
		return ownerFile{}, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			!strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") ||
			strings.HasSuffix(name, ".gen.go") {
			continue
		}

		filePath := filepath.Join(packageDir, name)
		file, err := parser.ParseFile(token.NewFileSet(), filePath, nil, parser.ParseComments)
		if err != nil {
			continue
		}
		if runsChaingen(file) {
			return ownerFromAST(filePath, file), nil
		}
	}

	return ownerFile{}, fmt.Errorf("no file in %s has a go:generate directive running chaingen", packageDir)
}

// runsChaingen reports whether any //go:generate line in file invokes a
// command whose path ends in chaingen, e.g. "chaingen", "go run ../cmd/chaingen"
// or "go run github.com/sghaida/fluent/cmd/chaingen@latest".
func runsChaingen(file *ast.File) bool {
	for _, group := range file.Comments {
		for _, c := range group.List {
			args, ok := strings.CutPrefix(c.Text, "//go:generate ")
			if !ok {
				continue
			}
			for _, arg := range strings.Fields(args) {
				if strings.HasPrefix(arg, "-") {
					continue
				}
				cmd, _, _ := strings.Cut(arg, "@")
				if path.Base(cmd) == "chaingen" {
					return true
				}
			}
		}
	}
	return false
}

func ownerFromAST(filePath string, file *ast.File) ownerFile {
	owner := ownerFile{Path: filePath, Package: file.Name.Name}
	for _, imp := range file.Imports {
		spec := ImportSpec{Path: strings.Trim(imp.Path.Value, "`\"")}
		if imp.Name != nil {
			spec.Alias = imp.Name.Name
		}
		owner.Imports = append(owner.Imports, spec)
	}
	return owner
}

// resolveChainImport decides how the generated file imports the chain package.
//
// Rules:
// - If the owner imports chainPath under a usable alias, reuse that alias.
// - Otherwise import it plainly and refer to it by its last path element.
// - Blank and dot imports in the owner are ignored.
func resolveChainImport(imports []ImportSpec, chainPath string) (ImportSpec, string) {
	for _, imp := range imports {
		if imp.Path != chainPath {
			continue
		}
		if imp.Alias != "" && imp.Alias != "_" && imp.Alias != "." {
			return ImportSpec{Alias: imp.Alias, Path: chainPath}, imp.Alias
		}
	}
	return ImportSpec{Path: chainPath}, path.Base(chainPath)
}
