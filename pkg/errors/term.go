package errors

// TermError provides specialized error handling for term-dictionary and
// posting-list operations: FST lookups, ordering contract violations, and
// posting decode failures. This mirrors the structure of StorageError but
// carries the context relevant to a single segment's term/posting pipeline
// rather than raw file I/O.
type TermError struct {
	*baseError

	// term is the term bytes involved in the error, rendered as a string
	// for readability; terms are arbitrary bytes but in practice are almost
	// always valid UTF-8 tokens.
	term string

	// segmentID identifies which segment's TERMS/POSTINGS component was
	// being accessed.
	segmentID string

	// operation names what was being performed: "Lookup", "NewTerm",
	// "WriteDocs", "Invert".
	operation string
}

// NewTermError creates a new term-specific error with the provided context.
func NewTermError(err error, code ErrorCode, msg string) *TermError {
	return &TermError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the TermError type.
func (te *TermError) WithMessage(msg string) *TermError {
	te.baseError.WithMessage(msg)
	return te
}

// WithCode sets the error code while preserving the TermError type.
func (te *TermError) WithCode(code ErrorCode) *TermError {
	te.baseError.WithCode(code)
	return te
}

// WithDetail adds contextual information while maintaining the TermError type.
func (te *TermError) WithDetail(key string, value any) *TermError {
	te.baseError.WithDetail(key, value)
	return te
}

// WithTerm records which term was involved in the error.
func (te *TermError) WithTerm(term []byte) *TermError {
	te.term = string(term)
	return te
}

// WithSegmentID records which segment's term dictionary was involved.
func (te *TermError) WithSegmentID(segmentID string) *TermError {
	te.segmentID = segmentID
	return te
}

// WithOperation records which term-dictionary operation was in progress.
func (te *TermError) WithOperation(operation string) *TermError {
	te.operation = operation
	return te
}

// Term returns the term bytes (as a string) involved in the error.
func (te *TermError) Term() string {
	return te.term
}

// SegmentID returns the segment identifier associated with the error.
func (te *TermError) SegmentID() string {
	return te.segmentID
}

// Operation returns the name of the operation that was being performed.
func (te *TermError) Operation() string {
	return te.operation
}

// NewTermNotFoundError creates an error for a failed FST lookup.
func NewTermNotFoundError(segmentID string, term []byte) *TermError {
	return NewTermError(nil, ErrorCodeTermNotFound, "term not found in segment dictionary").
		WithSegmentID(segmentID).
		WithTerm(term).
		WithOperation("Lookup")
}

// NewTermOutOfOrderError creates an error for a NewTerm call that violates
// the strictly-ascending term ordering contract.
func NewTermOutOfOrderError(segmentID string, previous, got []byte) *TermError {
	return NewTermError(nil, ErrorCodeTermOutOfOrder, "terms must be inserted in strictly ascending order").
		WithSegmentID(segmentID).
		WithTerm(got).
		WithOperation("NewTerm").
		WithDetail("previousTerm", string(previous))
}
