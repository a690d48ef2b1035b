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
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Input errors
	GenotypeHeaderError
	GenotypeRowError
	GenotypeCallError
	StrataFileError
	FrequencyFileError

	// Dataset errors
	DatasetEmptyError
	DatasetLocusCountError
	DatasetPloidyError
	DatasetDuplicateNameError
	DatasetCallPloidyError

	// Inbreeding configuration errors
	InvalidResultTypeError
	InvalidSampleSizeError
	InvalidGridSizeError
	UnknownPopulationError

	// Inbreeding per-individual conditions
	DegenerateLikelihoodError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError

	// Export errors
	ExportFormatError
	ExportOpenError
	ExportWriteError

	// Metrics errors
	MetricsRegisterError
	MetricsWriteError
)
