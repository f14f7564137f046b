// Package errors provides the error taxonomy every segcore component
// returns instead of bare wrapped stdlib errors: a shared baseError
// (code, cause, structured details) embedded by domain-specific types —
// StorageError for Directory I/O, TermError and SegmentError for
// segment reads/writes, DirectoryError for filesystem lifecycle — plus
// a distinct ContractViolation for caller-side ordering violations that
// are programming errors, not operational failures.
//
// Is*/As* helpers extract a concrete type from an error chain; GetErrorCode
// and GetErrorDetails dispatch across every type for callers that just want
// a code or a details map without caring which concrete type produced it.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsStorageError determines if an error is related to storage operations, such as file I/O,
// disk space issues, or segment file corruption. Storage errors often require different
// handling strategies than other error types because they may indicate hardware issues,
// capacity problems, or data integrity concerns that need immediate attention.
//
// Example usage:
//
//	if errors.IsStorageError(err) {
//	    storageErr, _ := errors.AsStorageError(err)
//	    switch storageErr.Code() {
//	    case ErrorCodeDiskFull:
//	        triggerCleanupProcedures()
//	    case ErrorCodePermissionDenied:
//	        alertAdministrator(storageErr.Path())
//	    }
//	}
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsTermError identifies errors that occurred during term-dictionary
// operations such as FST lookups or ordered-insertion checks. Term errors
// carry which term and segment were involved, which is essential context
// for debugging lookup failures and ordering violations.
//
// Example usage:
//
//	if errors.IsTermError(err) {
//	    termErr, _ := errors.AsTermError(err)
//	    if termErr.Code() == ErrorCodeTermNotFound {
//	        return nil, termErr
//	    }
//	}
func IsTermError(err error) bool {
	var te *TermError
	return stdErrors.As(err, &te)
}

// IsSegmentError identifies errors raised while reading or writing one of a
// segment's on-disk components.
func IsSegmentError(err error) bool {
	var se *SegmentError
	return stdErrors.As(err, &se)
}

// IsDirectoryError identifies errors raised by the Directory abstraction.
func IsDirectoryError(err error) bool {
	var de *DirectoryError
	return stdErrors.As(err, &de)
}

// IsContractViolation identifies a caller-side ordering contract violation,
// such as inserting a term or DocId out of order.
func IsContractViolation(err error) bool {
	var cv *ContractViolation
	return stdErrors.As(err, &cv)
}

// AsStorageError extracts StorageError context from an error chain, providing access to
// storage-specific information such as file offsets, file names, and paths.
// This context is crucial for implementing storage error recovery procedures and for
// providing detailed information to system administrators and monitoring systems.
//
// The extracted StorageError provides access to methods like Offset(), FileName(), and
// Path(), which contain the precise location information needed for effective storage
// error handling and recovery.
//
// Example usage:
//
//	if storageErr, ok := errors.AsStorageError(err); ok {
//	    errorContext := map[string]interface{}{
//	        "offset": storageErr.Offset(),
//	        "fileName": storageErr.FileName(),
//	        "path": storageErr.Path(),
//	        "errorCode": storageErr.Code(),
//	    }
//	    handleStorageFailure(errorContext)
//	}
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsTermError extracts TermError context, providing access to which term
// and segment were involved and what operation was being performed. This
// context is essential for diagnosing lookup failures and ordering
// violations in a segment's term dictionary.
//
// Example usage:
//
//	if termErr, ok := errors.AsTermError(err); ok {
//	    log.Warnw("term lookup failed",
//	        "term", termErr.Term(), "segment", termErr.SegmentID())
//	}
func AsTermError(err error) (*TermError, bool) {
	var te *TermError
	if stdErrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsSegmentError extracts SegmentError context from an error chain,
// providing access to SegmentID(), Component(), and Offset().
func AsSegmentError(err error) (*SegmentError, bool) {
	var se *SegmentError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsDirectoryError extracts DirectoryError context from an error chain,
// providing access to Path() and Op().
func AsDirectoryError(err error) (*DirectoryError, bool) {
	var de *DirectoryError
	if stdErrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsContractViolation extracts a ContractViolation from an error chain.
func AsContractViolation(err error) (*ContractViolation, bool) {
	var cv *ContractViolation
	if stdErrors.As(err, &cv) {
		return cv, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or returns
// ErrorCodeInternal for errors that don't have specific codes. This function provides
// a consistent way to categorize errors for monitoring and handling purposes.
//
// Example usage:
//
//	errorCode := errors.GetErrorCode(err)
//	metrics.IncrementErrorCounter(string(errorCode))
//
//	switch errorCode {
//	case errors.ErrorCodeDiskFull:
//	    triggerDiskSpaceAlert()
//	case errors.ErrorCodePermissionDenied:
//	    escalateToAdministrator()
//	}
func GetErrorCode(err error) ErrorCode {
	// Try StorageError first.
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}

	// Try TermError.
	if te, ok := AsTermError(err); ok {
		return te.Code()
	}

	// Try SegmentError.
	if se, ok := AsSegmentError(err); ok {
		return se.Code()
	}

	// Try DirectoryError.
	if de, ok := AsDirectoryError(err); ok {
		return de.Code()
	}

	// ContractViolation carries no error code; it is a distinct failure
	// class from the operational error hierarchy above.
	if IsContractViolation(err) {
		return ErrorCodeInvalidInput
	}

	// For any other error, return a generic internal error code.
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports them,
// returning an empty map for errors without details. This function provides consistent
// access to additional error context regardless of the specific error type.
//
// Example usage:
//
//	details := errors.GetErrorDetails(err)
//	if len(details) > 0 {
//	    logger.WithFields(details).Error("Operation failed", "error", err.Error())
//	}
//
//	// Check for specific detail keys
//	if operation, exists := details["operation"]; exists {
//	    handleOperationSpecificError(operation.(string))
//	}
func GetErrorDetails(err error) map[string]any {
	// Try StorageError first.
	if se, ok := AsStorageError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}

	// Try TermError.
	if te, ok := AsTermError(err); ok {
		if details := te.Details(); details != nil {
			return details
		}
	}

	// Try SegmentError.
	if se, ok := AsSegmentError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}

	// Try DirectoryError.
	if de, ok := AsDirectoryError(err); ok {
		if details := de.Details(); details != nil {
			return details
		}
	}

	// Return empty map for errors without details.
	return make(map[string]any)
}

// Analyzes directory creation failures and returns appropriate error
// codes based on the underlying system error. This helps clients
// understand exactly what went wrong and how they might fix it.
func ClassifyDirectoryCreationError(err error, path string) error {
	// Check if this is a permission denied error.
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"Insufficient permissions to create segment directory",
		).WithPath(path).
			WithDetail("operation", "directory_creation").
			WithDetail("required_permission", "write").
			WithDetail("suggestion", "check directory permissions or run with elevated privileges")
	}

	// Check for disk space issues using syscall analysis.
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				{
					return NewStorageError(
						err, ErrorCodeDiskFull,
						"Insufficient disk space to create segment directory",
					).WithPath(path).
						WithDetail("operation", "directory_creation").
						WithDetail("suggestion", "free up disk space or choose a different location")
				}
			case syscall.EROFS:
				{
					return NewStorageError(
						err, ErrorCodeFilesystemReadonly,
						"Cannot create directory on read-only filesystem",
					).WithPath(path).
						WithDetail("operation", "directory_creation").
						WithDetail("suggestion", "remount filesystem with write permissions")
				}
			}
		}
	}

	// For any other I/O errors, provide the generic I/O error with context
	return NewStorageError(
		err, ErrorCodeIO, "Failed to create segment directory",
	).WithPath(path).WithDetail("operation", "directory_creation")
}

