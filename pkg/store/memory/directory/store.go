package directory

import (
	"context"
	"fmt"

	"github.com/cm-tools/church-admin/pkg/models/domain"
)

// Store exposes the person/event lookup tables. The data is reference
// material owned outside the attendance and report stores; it is read-only
// after construction.
type Store interface {
	People(ctx context.Context) ([]domain.Person, error)
	Events(ctx context.Context) ([]domain.Event, error)
	// PersonByID returns nil when the id is unknown. Lookup misses are not
	// errors: callers resolving denormalized snapshots degrade to an absent
	// snapshot instead of failing.
	PersonByID(ctx context.Context, id string) (*domain.Person, error)
	// EventByID returns nil when the id is unknown.
	EventByID(ctx context.Context, id string) (*domain.Event, error)
}

type directoryStore struct {
	people     []domain.Person
	events     []domain.Event
	peopleByID map[string]domain.Person
	eventsByID map[string]domain.Event
}

// NewStore builds a lookup store over the given reference data.
func NewStore(people []domain.Person, events []domain.Event) (Store, error) {
	s := &directoryStore{
		people:     append([]domain.Person(nil), people...),
		events:     append([]domain.Event(nil), events...),
		peopleByID: make(map[string]domain.Person, len(people)),
		eventsByID: make(map[string]domain.Event, len(events)),
	}
	for _, p := range people {
		if p.ID == "" {
			return nil, fmt.Errorf("person %q %q has no id", p.FirstName, p.LastName)
		}
		s.peopleByID[p.ID] = p
	}
	for _, e := range events {
		if e.ID == "" {
			return nil, fmt.Errorf("event %q has no id", e.Name)
		}
		s.eventsByID[e.ID] = e
	}
	return s, nil
}

// NewSeededStore builds a store over the bundled congregation dataset.
func NewSeededStore() (Store, error) {
	return NewStore(SeedPeople(), SeedEvents())
}

func (s *directoryStore) People(_ context.Context) ([]domain.Person, error) {
	return append([]domain.Person(nil), s.people...), nil
}

func (s *directoryStore) Events(_ context.Context) ([]domain.Event, error) {
	return append([]domain.Event(nil), s.events...), nil
}

func (s *directoryStore) PersonByID(_ context.Context, id string) (*domain.Person, error) {
	p, ok := s.peopleByID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *directoryStore) EventByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := s.eventsByID[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}
