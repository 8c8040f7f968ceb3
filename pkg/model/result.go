package model

import (
	"time"

	"github.com/google/uuid"
)

// ImportResult summarizes a successful import.
type ImportResult struct {
	ProjectID   uuid.UUID `json:"projectId"   yaml:"project_id"`
	ProjectName string    `json:"projectName" yaml:"project_name"`
	FilePath    string    `json:"filePath"    yaml:"file_path"`

	StoreyCount   int `json:"storeyCount"   yaml:"storey_count"`
	TypeCount     int `json:"typeCount"     yaml:"type_count"`
	MaterialCount int `json:"materialCount" yaml:"material_count"`
	ElementCount  int `json:"elementCount"  yaml:"element_count"`
	SpaceCount    int `json:"spaceCount"    yaml:"space_count"`
	PropertyCount int `json:"propertyCount" yaml:"property_count"`
	QuantityCount int `json:"quantityCount" yaml:"quantity_count"`
	LayerCount    int `json:"layerCount"    yaml:"layer_count"`
	BoundaryCount int `json:"boundaryCount" yaml:"boundary_count"`
	OpeningCount  int `json:"openingCount"  yaml:"opening_count"`

	// ReplacedProject is the soft-deleted project of an earlier import of
	// the same file, set only for re-imports.
	ReplacedProject *uuid.UUID `json:"replacedProject,omitempty" yaml:"replaced_project,omitempty"`

	// Warnings are non-fatal conditions met during the import.
	Warnings []string `json:"warnings" yaml:"warnings"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// ProjectInfo is a summary of an imported project.
type ProjectInfo struct {
	ID            uuid.UUID  `json:"id"                  yaml:"id"`
	Name          string     `json:"name"                yaml:"name"`
	SchemaVersion string     `json:"schemaVersion"       yaml:"schema_version"`
	FilePath      string     `json:"filePath"            yaml:"file_path"`
	FileHash      string     `json:"fileHash"            yaml:"file_hash"`
	AuthoringApp  string     `json:"authoringApp"        yaml:"authoring_app"`
	ImportedAt    time.Time  `json:"importedAt"          yaml:"imported_at"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty" yaml:"deleted_at,omitempty"`
	ElementCount  int        `json:"elementCount"        yaml:"element_count"`
	SpaceCount    int        `json:"spaceCount"          yaml:"space_count"`
}
