package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigReadError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// IFC errors
	IfcFileNotFoundError
	IfcParseError
	IfcUnsupportedSchemaError
	IfcNoProjectError

	// Import errors
	ImportDuplicateFileError
	ImportStageError
	ImportCancelledError

	// Store errors
	StoreTxError
	StoreInsertError
	StoreQueryError
	ProjectNotFoundError
	InvalidProjectIDError

	// Optimize errors
	OptimizePurgeError
	OptimizeVacuumError
)
