// This package addresses the fundamental challenge that generic error handling presents in complex
// systems: when an error occurs, callers need much more than just "something went wrong." They need
// to understand exactly what failed, where it failed, and what they can do about it.
//
// Architecture and Design Philosophy:
//
// The error system is built around a hierarchical structure that starts with a foundational baseError
// and extends into domain-specific error types. This design provides several key advantages: it
// maintains consistency across all error types while allowing specialized context for different
// domains, enables rich error chaining that preserves the complete failure context, and supports
// programmatic error handling through standardized error codes.
//
// The database core fails in a handful of distinct ways, each needing different diagnostic context.
// An archive error needs to know which byte offset and backing file were involved. A record error
// needs to know which (block, slot) address and which operation were in progress. A hierarchical-DB
// error needs to know which directory path and entry name were involved. By capturing this
// domain-specific context at the point of failure, callers further up the stack can make decisions
// without re-deriving it from a stack trace.
//
// Error Classification and Codes:
//
// Central to this system is the ErrorCode taxonomy in codes.go, which provides standardized
// categorization of failures independent of error message text. This lets callers branch on
// errors.GetErrorCode(err) rather than string-matching Error().
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsArchiveError checks if the given error is an ArchiveError or contains one in its error chain.
func IsArchiveError(err error) bool {
	var ae *ArchiveError
	return stdErrors.As(err, &ae)
}

// IsRecordError determines if an error occurred during a record-array or record-file operation:
// allocating, reading, writing, or deleting a (block, slot) record.
func IsRecordError(err error) bool {
	var re *RecordError
	return stdErrors.As(err, &re)
}

// IsHierDBError identifies errors that occurred during a hierarchical-database cursor operation:
// descend, ascend, seek, create, or delete.
func IsHierDBError(err error) bool {
	var he *HierDBError
	return stdErrors.As(err, &he)
}

// AsArchiveError safely extracts an ArchiveError from an error chain, providing access to
// archive-specific context such as block number, byte offset, and backing file path.
//
// Example usage:
//
//	if archiveErr, ok := errors.AsArchiveError(err); ok {
//	    log.Errorw("archive failure", "path", archiveErr.Path(), "offset", archiveErr.Offset())
//	}
func AsArchiveError(err error) (*ArchiveError, bool) {
	var ae *ArchiveError
	if stdErrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AsRecordError extracts RecordError context, providing access to the block number, slot,
// operation name, and size involved in a record-level failure.
//
// Example usage:
//
//	if recordErr, ok := errors.AsRecordError(err); ok {
//	    if recordErr.Code() == ErrorCodeBadAddress {
//	        log.Errorw("bad record address", "block", recordErr.BlockNum(), "slot", recordErr.Slot())
//	    }
//	}
func AsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if stdErrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// AsHierDBError extracts HierDBError context, providing access to the directory path, entry
// name, and cursor operation involved in a hierarchical-database failure.
//
// Example usage:
//
//	if hierErr, ok := errors.AsHierDBError(err); ok && hierErr.Code() == ErrorCodeHasChildren {
//	    return fmt.Errorf("refusing to delete %s: %w", hierErr.Name(), err)
//	}
func AsHierDBError(err error) (*HierDBError, bool) {
	var he *HierDBError
	if stdErrors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or returns
// ErrorCodeInternal for errors that don't carry one. This gives callers a single place to
// branch for monitoring or retry decisions.
func GetErrorCode(err error) ErrorCode {
	if ae, ok := AsArchiveError(err); ok {
		return ae.Code()
	}

	if re, ok := AsRecordError(err); ok {
		return re.Code()
	}

	if he, ok := AsHierDBError(err); ok {
		return he.Code()
	}

	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports them, returning an
// empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ae, ok := AsArchiveError(err); ok {
		if details := ae.Details(); details != nil {
			return details
		}
	}

	if re, ok := AsRecordError(err); ok {
		if details := re.Details(); details != nil {
			return details
		}
	}

	if he, ok := AsHierDBError(err); ok {
		if details := he.Details(); details != nil {
			return details
		}
	}

	return make(map[string]any)
}

// ClassifyBlockFileOpenError analyzes failures opening or creating the backing block-file
// archive and returns an ArchiveError with a code and detail set that reflects the underlying
// system error, rather than a generic I/O failure.
func ClassifyBlockFileOpenError(err error, path string) error {
	if os.IsPermission(err) {
		return NewArchiveError(
			err, ErrorCodeArchiveIO,
			"insufficient permissions to open block file",
		).WithPath(path).
			WithDetail("operation", "block_file_open").
			WithDetail("suggestion", "check file permissions or run with elevated privileges")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewArchiveError(
					err, ErrorCodeArchiveIO,
					"insufficient disk space to create block file",
				).WithPath(path).
					WithDetail("operation", "block_file_open").
					WithDetail("suggestion", "free up disk space or choose a different location")
			case syscall.EROFS:
				return NewArchiveError(
					err, ErrorCodeArchiveIO,
					"cannot open block file on read-only filesystem",
				).WithPath(path).
					WithDetail("operation", "block_file_open").
					WithDetail("suggestion", "remount filesystem with write permissions")
			}
		}
	}

	return NewArchiveError(err, ErrorCodeArchiveIO, "failed to open block file").
		WithPath(path).
		WithDetail("operation", "block_file_open")
}

// ClassifyBlockFlushError analyzes failures flushing dirty blocks back to the backing file and
// returns an ArchiveError describing the underlying condition. A flush failure partway through
// the LRU cache's eviction pass can leave the file in an inconsistent state, so the block number
// and offset are always attached when known.
func ClassifyBlockFlushError(err error, path string, blockNum int64, offset int64) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewArchiveError(
					err, ErrorCodeArchiveIO,
					"cannot flush block: insufficient disk space",
				).WithPath(path).WithBlockNum(blockNum).WithOffset(offset).
					WithDetail("operation", "block_flush").
					WithDetail("suggestion", "free up disk space before continuing")
			case syscall.EROFS:
				return NewArchiveError(
					err, ErrorCodeArchiveIO,
					"cannot flush block: filesystem is read-only",
				).WithPath(path).WithBlockNum(blockNum).WithOffset(offset).
					WithDetail("operation", "block_flush").
					WithDetail("suggestion", "remount filesystem with write permissions")
			case syscall.EIO:
				return NewArchiveError(
					err, ErrorCodeArchiveIO,
					"I/O error flushing block - possible hardware or corruption issue",
				).WithPath(path).WithBlockNum(blockNum).WithOffset(offset).
					WithDetail("operation", "block_flush").
					WithDetail("severity", "high")
			}
		}
	}

	return NewArchiveError(err, ErrorCodeArchiveIO, "failed to flush block to disk").
		WithPath(path).WithBlockNum(blockNum).WithOffset(offset).
		WithDetail("operation", "block_flush")
}
