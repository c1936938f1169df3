package document

import (
	"maps"
	"slices"
	"sync"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("asmls.document")

// Store holds the open documents, keyed by URI.
type Store struct {
	lock sync.RWMutex
	docs map[protocol.DocumentUri]*Document
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{
		docs: make(map[protocol.DocumentUri]*Document),
	}
}

// Open records a newly opened document, replacing any previous version.
func (s *Store) Open(item protocol.TextDocumentItem) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.docs[item.URI] = &Document{
		URI:        item.URI,
		LanguageID: item.LanguageID,
		Version:    item.Version,
		Text:       item.Text,
	}
	log.Debugf("open %v (version %d)", item.URI, item.Version)
}

// Change applies content changes, in order, to an open document.
//
// The changes are applied atomically: if any change fails the document is
// left as it was.
func (s *Store) Change(uri protocol.DocumentUri, version protocol.Integer, changes []any) (err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		err = ErrDocumentUnknown(uri)
		return
	}

	work := *doc
	for n, change := range changes {
		err = work.apply(change)
		if err != nil {
			err = &ErrChange{URI: string(uri), Index: n, Err: err}
			return
		}
	}
	work.Version = version

	*doc = work
	return
}

// Close forgets a document. Returns false if the document was not open.
func (s *Store) Close(uri protocol.DocumentUri) (ok bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok = s.docs[uri]
	delete(s.docs, uri)
	if ok {
		log.Debugf("close %v", uri)
	}
	return
}

// Get returns a snapshot of an open document.
func (s *Store) Get(uri protocol.DocumentUri) (doc Document, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ptr, ok := s.docs[uri]
	if ok {
		doc = *ptr
	}
	return
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.docs)
}

// URIs returns the URIs of the open documents, sorted.
func (s *Store) URIs() []protocol.DocumentUri {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return slices.Sorted(maps.Keys(s.docs))
}
