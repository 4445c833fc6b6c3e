package assessment

import (
	"sync"
	"time"
)

const (
	MinRating = 1
	MaxRating = 3
)

// Store holds the current assessment document and republishes it on every
// change. Each mutator computes a new document from the latest value under
// the lock and swaps it in wholesale, so subscribers always observe a
// consistent snapshot and concurrent mutators never lose updates.
type Store struct {
	mu          sync.Mutex
	current     Document
	subscribers map[int]func(Document)
	nextSubID   int
}

// NewStore creates a store seeded with the given document.
func NewStore(doc Document) *Store {
	return &Store{
		current:     doc.Clone(),
		subscribers: make(map[int]func(Document)),
	}
}

// Document returns a deep copy of the current document.
func (s *Store) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Subscribe registers a listener invoked with a snapshot after every
// replacement. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Document)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Replace swaps in a new document wholesale.
func (s *Store) Replace(doc Document) {
	s.mu.Lock()
	s.current = doc.Clone()
	listeners, snapshot := s.listenersAndSnapshot()
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Reset replaces the document with a fresh default, gated on the supplied
// confirmation predicate. Returns true when the reset was applied.
func (s *Store) Reset(confirm func() bool) bool {
	if confirm == nil || !confirm() {
		return false
	}
	s.Replace(DefaultDocument(time.Now()))
	return true
}

// SetDimensionRating sets the current rating of a dimension, clamped to
// the valid range. An unknown id is a no-op.
func (s *Store) SetDimensionRating(id string, rating int) {
	if rating < MinRating {
		rating = MinRating
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	s.updateDimension(id, func(dim *Dimension) {
		dim.CurrentRating = rating
	})
}

// SetDimensionEvidence sets the evidence text of a dimension.
func (s *Store) SetDimensionEvidence(id, evidence string) {
	s.updateDimension(id, func(dim *Dimension) {
		dim.Evidence = evidence
	})
}

// SetProgrammaticAnswer sets the tri-state answer of a checklist item.
// Unanswered is a legal target value, not just an initial state.
func (s *Store) SetProgrammaticAnswer(id string, answer Answer) {
	s.updateItem(id, func(item *ProgrammaticItem) {
		item.Answer = answer
	})
}

// SetProgrammaticComments sets the comments of a checklist item.
func (s *Store) SetProgrammaticComments(id, comments string) {
	s.updateItem(id, func(item *ProgrammaticItem) {
		item.Comments = comments
	})
}

// SetPlanningNotes sets one of the four planning note fields. An unknown
// field key is a no-op.
func (s *Store) SetPlanningNotes(field, value string) {
	s.mutate(func(doc *Document) bool {
		switch field {
		case NoteStrengths:
			doc.PlanningNotes.Strengths = value
		case NoteImprovements:
			doc.PlanningNotes.Improvements = value
		case NoteChampions:
			doc.PlanningNotes.Champions = value
		case NoteResources:
			doc.PlanningNotes.Resources = value
		default:
			return false
		}
		return true
	})
}

// SetProgramName sets the program name.
func (s *Store) SetProgramName(name string) {
	s.mutate(func(doc *Document) bool {
		doc.ProgramName = name
		return true
	})
}

func (s *Store) updateDimension(id string, apply func(*Dimension)) {
	s.mutate(func(doc *Document) bool {
		for i := range doc.Dimensions {
			if doc.Dimensions[i].ID == id {
				apply(&doc.Dimensions[i])
				return true
			}
		}
		return false
	})
}

func (s *Store) updateItem(id string, apply func(*ProgrammaticItem)) {
	s.mutate(func(doc *Document) bool {
		for i := range doc.ProgrammaticItems {
			if doc.ProgrammaticItems[i].ID == id {
				apply(&doc.ProgrammaticItems[i])
				return true
			}
		}
		return false
	})
}

// mutate clones the latest document, applies fn to the clone, and swaps
// it in when fn reports a change. No-ops leave the document untouched and
// do not notify subscribers.
func (s *Store) mutate(fn func(*Document) bool) {
	s.mu.Lock()
	next := s.current.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return
	}
	s.current = next
	listeners, snapshot := s.listenersAndSnapshot()
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// listenersAndSnapshot must be called with the lock held.
func (s *Store) listenersAndSnapshot() ([]func(Document), Document) {
	listeners := make([]func(Document), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	return listeners, s.current.Clone()
}
