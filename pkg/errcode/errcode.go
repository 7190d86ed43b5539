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

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBQueryTablesError
	DBDropTableError
	DBAppendError
	DBDeleteExpeditionError

	// Identifier derivation errors
	MissingKeyFieldError
	DuplicateKeyError
	UnknownMethodError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError
	SchemaParseError

	// Linker errors
	AmbiguousJoinError
	MissingJoinKeyError

	// Ingest errors
	IngestConfigError
	IngestFileNotFoundError
	IngestReadError
	IngestExpeditionsConfigError

	// Staging errors
	StageOpenError
	StageWriteError
	StageReadError

	// Pipeline errors
	PipelineCancelledError
	PipelineAllExpeditionsFailedError
	PipelineOverridesError

	// Taxa errors
	TaxaParseError
	TaxaLookupError
	TaxaCacheError

	// Upload errors
	UploadDuplicateExpeditionError
)
