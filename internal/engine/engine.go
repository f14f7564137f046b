// Package engine provides the core coordinator for a segcore instance.
//
// The engine serves as the central coordinator and entry point for all
// indexing and search operations. It orchestrates the interaction between
// three subsystems:
//   - Directory: the filesystem abstraction every segment component is
//     read from and written to
//   - segment.Writer: the currently open segment documents are being
//     accumulated into
//   - search.Searcher: the set of closed, queryable segments
//
// The engine implements a thread-safe interface with proper lifecycle
// management, ensuring resources are properly initialized and cleaned up.
// It uses atomic operations for state management to provide consistent
// behavior across concurrent operations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/iamNilotpal/segcore/internal/directory"
	"github.com/iamNilotpal/segcore/internal/search"
	"github.com/iamNilotpal/segcore/internal/segment"
	"github.com/iamNilotpal/segcore/internal/store"
	"github.com/iamNilotpal/segcore/pkg/options"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = errors.New("operation failed: cannot access closed engine")

// Engine coordinates the full lifecycle a segcore deployment needs: opening
// previously closed segments for search, accumulating new documents into a
// fresh segment, rotating to a new segment once the current one reaches
// its configured document limit, and closing everything down cleanly.
//
// Engine is safe for concurrent Search/GetDoc calls. AddDoc/AddTerm are not
// safe for concurrent use (the active segment.Writer has exactly one
// producer, matching how a segment is specified to have one writer).
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	dir     directory.Directory
	closed  atomic.Bool

	searcher *search.Searcher

	writeMu    sync.Mutex
	active     *segment.Writer
	activeID   segment.Id
	activeDocs int
	activeNext uint32
	dataDir    string
}

// Config holds all the parameters needed to initialize a new Engine instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New creates and initializes a new Engine instance with the provided
// configuration: it opens (or creates) the configured data directory,
// discovers every previously closed segment for search, and opens a fresh
// segment ready to accept new documents.
//
// Any segment component files left behind by a prior crash but never
// finalized with a TERMS file are simply invisible to segment discovery
// and are left untouched. segcore does not recover or clean up partial
// segments.
func New(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, fmt.Errorf("engine: configuration is required")
	}

	dir, err := directory.NewFsDirectory(config.Options.DataDir, *config.Options, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("engine: opening data directory: %w", err)
	}

	searcher, err := search.ForDirectory(dir, config.Options.DataDir, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("engine: opening existing segments: %w", err)
	}

	e := &Engine{
		options:  config.Options,
		log:      config.Logger,
		dir:      dir,
		searcher: searcher,
		dataDir:  config.Options.DataDir,
	}

	if err := e.rotate(); err != nil {
		_ = searcher.Close()
		return nil, err
	}

	return e, nil
}

// AddDoc buffers doc into the active segment, rotating to a fresh segment
// first if the active one has reached its configured document limit. It
// returns the document's DocId within whichever segment it ends up in; that
// segment is not searchable (and its DocAddress not resolvable) until a
// subsequent Flush or Close registers it with the Searcher.
func (e *Engine) AddDoc(doc store.Document) (uint32, error) {
	if e.closed.Load() {
		return 0, ErrEngineClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if e.activeDocs >= e.options.MaxSegmentDocs {
		if err := e.rotateLocked(); err != nil {
			return 0, err
		}
	}

	docID := e.activeNext
	if err := e.active.StoreDoc(docID, doc); err != nil {
		return 0, err
	}

	e.activeNext++
	e.activeDocs++
	return docID, nil
}

// AddTerm registers term with docFreq and its posting list against the
// active segment. See segment.Writer.NewTerm/WriteDocs for the ordering
// contract this must respect.
func (e *Engine) AddTerm(term []byte, docFreq uint32, docIDs []uint32) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.active.NewTerm(term, docFreq); err != nil {
		return err
	}
	return e.active.WriteDocs(docIDs)
}

// Flush closes the active segment (making it visible to Search) and opens
// a fresh one to continue accumulating documents into.
func (e *Engine) Flush() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.rotateLocked()
}

// Search runs terms against every closed segment and feeds matches to
// collector. Documents still buffered in the active (not yet closed)
// segment are not searchable until Flush closes it.
func (e *Engine) Search(terms [][]byte, collector search.Collector) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.searcher.Search(terms, collector)
}

// GetDoc resolves addr against the Searcher's opened segments.
func (e *Engine) GetDoc(addr search.DocAddress) (store.Document, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.searcher.GetDoc(addr)
}

// rotate opens a brand new segment as the active one. Called during
// New (unlocked) and from rotateLocked (locked).
func (e *Engine) rotate() error {
	seg := segment.New()
	w, err := segment.NewWriter(e.dir, seg.ID, e.options.StoreChunkSize, e.log)
	if err != nil {
		return err
	}

	e.active = w
	e.activeID = seg.ID
	e.activeDocs = 0
	e.activeNext = 0
	return nil
}

// closeActiveLocked closes the active segment's component files, and if any
// documents were written to it, registers it with the Searcher so it
// becomes queryable. writeMu must be held by the caller. After it returns,
// e.active is nil; callers that want to keep indexing must call rotate
// afterward.
func (e *Engine) closeActiveLocked() error {
	if e.active == nil {
		return nil
	}

	hadDocs := e.activeDocs > 0
	closedID := e.activeID

	if err := e.active.Close(); err != nil {
		return fmt.Errorf("engine: closing segment %s: %w", closedID, err)
	}
	e.active = nil

	if !hadDocs {
		// Nothing was ever written to this segment; its (empty but valid)
		// components stay on disk unregistered rather than cluttering the
		// Searcher with a segment every idle Flush call would otherwise add.
		return nil
	}

	if err := e.searcher.AddSegment(e.dir, closedID); err != nil {
		return fmt.Errorf("engine: registering closed segment %s: %w", closedID, err)
	}
	return nil
}

// rotateLocked closes the active segment (registering it with the Searcher
// if it holds any documents) and opens a new active segment in its place.
// writeMu must be held by the caller.
func (e *Engine) rotateLocked() error {
	if err := e.closeActiveLocked(); err != nil {
		return err
	}
	return e.rotate()
}

// Close gracefully shuts down the engine: the active segment is closed and
// registered if it holds any documents, then every opened segment reader is
// released. Unlike Flush, Close does not open a replacement segment.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.writeMu.Lock()
	closeActiveErr := e.closeActiveLocked()
	e.writeMu.Unlock()

	closeSearcherErr := e.searcher.Close()
	if closeActiveErr != nil {
		return closeActiveErr
	}
	return closeSearcherErr
}
