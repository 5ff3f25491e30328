package main

import (
	"fmt"
	"path/filepath"

	"github.com/sghaida/fluent/pkg/log"
)

// generator turns one spec file into one generated Go file.
type generator struct {
	specPath string
	outPath  string
	logger   log.Logger
	files    fileOps
}

func newGenerator(specPath, outPath string, logger log.Logger) *generator {
	return &generator{specPath: specPath, outPath: outPath, logger: logger, files: osFileOps}
}

// generate runs the whole pipeline once: load, validate, resolve the owner
// file, render, write.
func (g *generator) generate() error {
	spec, err := loadSpec(g.specPath)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}
	if err := validateSpec(&spec); err != nil {
		return fmt.Errorf("invalid spec %s: %w", g.specPath, err)
	}

	outPath := filepath.Clean(g.outPath)
	packageDir := filepath.Dir(outPath)

	var owner *ownerFile
	if found, err := findOwnerFile(packageDir); err != nil {
		// Without an owner file we can still generate from spec.Package.
		g.logger.Debug("no owner file", log.String("dir", packageDir), log.Err(err))
	} else {
		owner = &found
	}

	data, err := buildTemplateData(spec, g.specPath, owner)
	if err != nil {
		return err
	}

	src, err := render(data)
	if err != nil {
		return err
	}

	changed, err := g.files.writeIfChanged(outPath, src, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	g.logger.Info("chain generated",
		log.String("spec", g.specPath),
		log.String("out", outPath),
		log.String("package", data.Package),
		log.Int("levels", len(data.Levels)),
		log.Bool("changed", changed),
	)
	return nil
}
