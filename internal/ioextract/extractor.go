// Package ioextract turns an IFC document into the intermediate model.
// It owns unit conversion, geometry and flag derivation, hazard zone
// normalization and content hashing.
package ioextract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/gnames/ifcdb/internal/ioifc"
	"github.com/gnames/ifcdb/pkg/ifc"
	"github.com/gnames/ifcdb/pkg/lifecycle"
	"github.com/gnames/ifcdb/pkg/model"
	"golang.org/x/sync/errgroup"
)

// DefaultProjectName is used when IfcProject has no name.
const DefaultProjectName = "Unnamed Project"

// Schemas are the supported schema tags.
var Schemas = []string{"IFC2X3", "IFC4", "IFC4X1", "IFC4X2", "IFC4X3"}

var typeClasses = []string{
	"IfcWallType",
	"IfcDoorType",
	"IfcWindowType",
	"IfcSlabType",
	"IfcColumnType",
	"IfcBeamType",
	"IfcCoveringType",
	"IfcCurtainWallType",
	"IfcStairType",
	"IfcRampType",
	"IfcRailingType",
	"IfcFurnitureType",
}

// elementClasses are visited in this order. An element found by several
// passes keeps the result of the first one.
var elementClasses = []string{
	"IfcWall",
	"IfcWallStandardCase",
	"IfcDoor",
	"IfcWindow",
	"IfcSlab",
	"IfcRoof",
	"IfcColumn",
	"IfcBeam",
	"IfcStair",
	"IfcStairFlight",
	"IfcRamp",
	"IfcRampFlight",
	"IfcCurtainWall",
	"IfcCovering",
	"IfcRailing",
	"IfcFurniture",
	"IfcFurnishingElement",
	"IfcOpeningElement",
	"IfcDistributionElement",
	"IfcFlowSegment",
	"IfcFlowFitting",
	"IfcFlowTerminal",
}

const hashChunk = 8192

type extractor struct{}

// New creates an Extractor that reads IFC files from disk.
func New() lifecycle.Extractor {
	return &extractor{}
}

// Extract checks the schema tag of the header, then parses the file and
// hashes its content at the same time, and builds the project.
func (x *extractor) Extract(
	ctx context.Context,
	path string,
) (*model.Project, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ioifc.FileNotFoundError(path, err)
		}
		return nil, ReadFileError(path, err)
	}

	// A header naming an unknown schema is rejected before the instances
	// are parsed. Header errors surface from the full parse.
	if schema, err := ioifc.Schema(path); err == nil && schema != "" &&
		!slices.Contains(Schemas, schema) {
		return nil, UnsupportedSchemaError(path, schema)
	}

	var doc ifc.Document
	var hash string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hash, err = FileHash(gctx, path)
		return err
	})
	g.Go(func() error {
		var err error
		doc, err = ioifc.Open(path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return FromDocument(ctx, doc, path, hash)
}

// FileHash returns hex encoded SHA-256 of a file. The file is read in
// small chunks.
func FileHash(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ReadFileError(path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunk)
	for {
		if err = ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.Read(buf)
		h.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", ReadFileError(path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FromDocument builds the project from an opened document.
func FromDocument(
	ctx context.Context,
	doc ifc.Document,
	path, hash string,
) (*model.Project, error) {
	if !slices.Contains(Schemas, doc.Schema()) {
		return nil, UnsupportedSchemaError(path, doc.Schema())
	}

	prj, err := doc.Project()
	if err != nil {
		return nil, err
	}

	auth := doc.Authoring()
	res := &model.Project{
		Name:          prj.Name,
		Description:   prj.Description,
		SchemaVersion: doc.Schema(),
		FilePath:      path,
		FileHash:      hash,
		AuthoringApp:  auth.Application,
		Author:        auth.Author,
		Organization:  auth.Organization,
	}
	if res.Name == "" {
		res.Name = DefaultProjectName
	}

	x := &extraction{doc: doc, scale: doc.UnitScale(), prj: res}
	slog.Info("Extracting IFC file",
		"path", path,
		"schema", res.SchemaVersion,
		"unit_scale", x.scale,
	)

	steps := []func(context.Context) error{
		x.storeys,
		x.types,
		x.elements,
		x.spaces,
	}
	for _, step := range steps {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if err = step(ctx); err != nil {
			return nil, err
		}
	}
	x.collectMaterials()

	slog.Info("Extracted IFC file",
		"path", path,
		"storeys", len(res.Storeys),
		"types", len(res.Types),
		"elements", len(res.Elements),
		"spaces", len(res.Spaces),
		"materials", len(res.Materials),
		"warnings", len(res.Warnings),
	)
	return res, nil
}

type extraction struct {
	doc   ifc.Document
	scale float64
	prj   *model.Project
}

func (x *extraction) warn(msg string) {
	slog.Warn(msg)
	x.prj.Warnings = append(x.prj.Warnings, msg)
}

// byType returns entities of a class or records a warning.
func (x *extraction) byType(class string) ([]ifc.Entity, bool) {
	ents, err := x.doc.ByType(class)
	if errors.Is(err, ifc.ErrUnknownClass) {
		x.warn(fmt.Sprintf(
			"class %s is not defined in schema %s, skipped",
			class, x.prj.SchemaVersion,
		))
		return nil, false
	}
	if err != nil {
		x.warn(fmt.Sprintf("cannot extract class %s: %v", class, err))
		return nil, false
	}
	return ents, true
}

func (x *extraction) storeys(context.Context) error {
	ents, _ := x.byType("IfcBuildingStorey")
	for _, e := range ents {
		st := model.Storey{
			GlobalID: e.GlobalID,
			Name:     e.Name,
			LongName: e.LongName,
		}
		if e.Elevation != nil {
			v := *e.Elevation * x.scale
			st.Elevation = &v
		}
		x.prj.Storeys = append(x.prj.Storeys, st)
	}
	return nil
}

func (x *extraction) types(context.Context) error {
	seen := make(map[string]struct{})
	for _, class := range typeClasses {
		ents, ok := x.byType(class)
		if !ok {
			continue
		}
		for _, e := range ents {
			if _, ok := seen[e.GlobalID]; ok {
				continue
			}
			seen[e.GlobalID] = struct{}{}
			x.prj.Types = append(x.prj.Types, model.TypeDef{
				GlobalID:    e.GlobalID,
				IfcClass:    e.Class,
				Name:        e.Name,
				Description: e.Description,
				Properties:  x.properties(e),
			})
		}
	}
	return nil
}

func (x *extraction) elements(ctx context.Context) error {
	seen := make(map[string]struct{})
	var noID int
	for _, class := range elementClasses {
		if err := ctx.Err(); err != nil {
			return err
		}
		ents, ok := x.byType(class)
		if !ok {
			continue
		}
		for _, e := range ents {
			if e.GlobalID == "" {
				noID++
				continue
			}
			if _, ok := seen[e.GlobalID]; ok {
				continue
			}
			seen[e.GlobalID] = struct{}{}
			x.prj.Elements = append(x.prj.Elements, x.element(e))
		}
	}
	if noID > 0 {
		x.warn(fmt.Sprintf("%d elements without GlobalId skipped", noID))
	}
	return nil
}

func (x *extraction) spaces(context.Context) error {
	ents, ok := x.byType("IfcSpace")
	if !ok {
		return nil
	}
	for _, e := range ents {
		x.prj.Spaces = append(x.prj.Spaces, x.space(e))
	}
	return nil
}

// collectMaterials keeps distinct material names of elements in order of
// their first appearance. The first category seen wins.
func (x *extraction) collectMaterials() {
	seen := make(map[string]struct{})
	for _, el := range x.prj.Elements {
		for _, l := range el.Materials {
			if _, ok := seen[l.Name]; ok {
				continue
			}
			seen[l.Name] = struct{}{}
			x.prj.Materials = append(x.prj.Materials,
				model.Material{Name: l.Name, Category: l.Category})
		}
	}
}
