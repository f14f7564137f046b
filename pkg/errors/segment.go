package errors

// SegmentError embeds baseError, as StorageError does (it is not itself a
// StorageError), for failures that occur while
// reading or writing one of a segment's three components (TERMS, POSTINGS,
// STORE), carrying the segment and component identity instead of a raw
// file path.
type SegmentError struct {
	*baseError
	segmentID string // SegmentId.String() of the segment involved.
	component string // "terms", "postings", or "store".
	offset    int64  // Byte offset within the component where the problem happened.
}

// NewSegmentError creates a new segment-specific error.
func NewSegmentError(err error, code ErrorCode, msg string) *SegmentError {
	return &SegmentError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the SegmentError type.
func (se *SegmentError) WithMessage(msg string) *SegmentError {
	se.baseError.WithMessage(msg)
	return se
}

// WithCode sets the error code while preserving the SegmentError type.
func (se *SegmentError) WithCode(code ErrorCode) *SegmentError {
	se.baseError.WithCode(code)
	return se
}

// WithDetail adds contextual information while maintaining the SegmentError type.
func (se *SegmentError) WithDetail(key string, value any) *SegmentError {
	se.baseError.WithDetail(key, value)
	return se
}

// WithSegmentID records which segment was involved.
func (se *SegmentError) WithSegmentID(id string) *SegmentError {
	se.segmentID = id
	return se
}

// WithComponent records which segment component was involved.
func (se *SegmentError) WithComponent(component string) *SegmentError {
	se.component = component
	return se
}

// WithOffset records the byte offset within the component.
func (se *SegmentError) WithOffset(offset int64) *SegmentError {
	se.offset = offset
	return se
}

// SegmentID returns the segment identifier where the error occurred.
func (se *SegmentError) SegmentID() string {
	return se.segmentID
}

// Component returns the segment component involved ("terms", "postings", "store").
func (se *SegmentError) Component() string {
	return se.component
}

// Offset returns the byte offset within the component where the error happened.
func (se *SegmentError) Offset() int64 {
	return se.offset
}

// NewSegmentWriteError wraps a low-level write failure with segment context.
func NewSegmentWriteError(err error, segmentID, component string, offset int64) *SegmentError {
	return NewSegmentError(err, ErrorCodeIO, "failed to write segment component").
		WithSegmentID(segmentID).
		WithComponent(component).
		WithOffset(offset)
}

// NewSegmentReadError wraps a low-level read failure with segment context.
func NewSegmentReadError(err error, segmentID, component string, offset int64) *SegmentError {
	return NewSegmentError(err, ErrorCodeSegmentCorrupted, "failed to read segment component").
		WithSegmentID(segmentID).
		WithComponent(component).
		WithOffset(offset)
}
