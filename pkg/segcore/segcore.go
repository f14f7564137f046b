// Package segcore is the public entry point for embedding a segcore index:
// a thin wrapper around the internal engine that accepts documents and
// their term postings, and answers term queries against every segment
// that has been flushed.
//
// segcore does not tokenize or analyze documents; callers supply the
// terms and document frequencies for each document themselves. This
// mirrors the scope of the format and retrieval core segcore implements:
// segment serialization, the skip-list index, and segment search, not
// query parsing or relevance scoring.
package segcore

import (
	"context"

	"github.com/iamNilotpal/segcore/internal/engine"
	"github.com/iamNilotpal/segcore/internal/search"
	"github.com/iamNilotpal/segcore/internal/store"
	"github.com/iamNilotpal/segcore/pkg/filesys"
	"github.com/iamNilotpal/segcore/pkg/options"
	"github.com/iamNilotpal/segcore/pkg/seglog"
)

// Instance represents one running segcore deployment. It encapsulates the
// underlying engine responsible for segment writing and search, and the
// configuration options applied to this instance.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

// NewInstance creates and initializes a new segcore Instance, preparing its
// data directory and opening every previously closed segment found there
// for search.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	log := seglog.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	existed, err := filesys.Exists(defaultOpts.DataDir)
	if err != nil {
		return nil, err
	}
	if err := filesys.CreateDir(defaultOpts.DataDir, 0o755, true); err != nil {
		return nil, err
	}
	if existed {
		log.Infow("opening existing data directory", "dataDir", defaultOpts.DataDir)
	} else {
		log.Infow("creating fresh data directory", "dataDir", defaultOpts.DataDir)
	}

	eng, err := engine.New(ctx, &engine.Config{Logger: log, Options: &defaultOpts})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// AddDocument stores doc in the active segment and returns its DocId within
// that segment. The document becomes searchable once Flush is called.
func (i *Instance) AddDocument(doc store.Document) (uint32, error) {
	return i.engine.AddDoc(doc)
}

// AddTerm registers term's posting list (docFreq and the ascending docIDs
// it matches) against the active segment.
func (i *Instance) AddTerm(term []byte, docFreq uint32, docIDs []uint32) error {
	return i.engine.AddTerm(term, docFreq, docIDs)
}

// Flush closes the active segment, making every document and term added to
// it so far searchable, and opens a new segment to continue indexing into.
func (i *Instance) Flush() error {
	return i.engine.Flush()
}

// Search runs terms against every flushed segment, feeding matches to
// collector.
func (i *Instance) Search(terms [][]byte, collector search.Collector) error {
	return i.engine.Search(terms, collector)
}

// GetDoc returns the stored document named by addr.
func (i *Instance) GetDoc(addr search.DocAddress) (store.Document, error) {
	return i.engine.GetDoc(addr)
}

// Close gracefully shuts down the Instance, flushing the active segment and
// releasing every opened segment reader.
func (i *Instance) Close() error {
	return i.engine.Close()
}
