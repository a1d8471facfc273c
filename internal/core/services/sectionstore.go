package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// SectionStore holds the ordered section list.
//
// Order values always equal slice positions (0..n-1). Every method either
// fully applies or leaves the store untouched. SectionStore does not record
// history; Builder snapshots after each successful call.
type SectionStore struct {
	sections []domain.Section
}

// NewSectionStore creates an empty store.
func NewSectionStore() *SectionStore {
	return &SectionStore{}
}

// Add appends section with order = current count.
func (s *SectionStore) Add(section domain.Section) (domain.Section, error) {
	if section.ID == "" {
		return domain.Section{}, fmt.Errorf("%w: section id is required", domain.ErrInvalidInput)
	}
	if !section.Type.IsValid() {
		return domain.Section{}, fmt.Errorf("%w: section type %q", domain.ErrUnsupportedType, section.Type)
	}
	if s.indexOf(section.ID) >= 0 {
		return domain.Section{}, fmt.Errorf("section %q: %w", section.ID, domain.ErrAlreadyExists)
	}

	added := section.Clone()
	added.Order = len(s.sections)
	s.sections = append(s.sections, added)
	return added.Clone(), nil
}

// Update merges patch into the section with the given ID. Type never changes.
func (s *SectionStore) Update(id string, patch domain.SectionPatch) (domain.Section, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Section{}, fmt.Errorf("section %q: %w", id, domain.ErrNotFound)
	}
	updated, err := patch.Apply(s.sections[i])
	if err != nil {
		return domain.Section{}, err
	}
	updated.ID = s.sections[i].ID
	updated.Type = s.sections[i].Type
	updated.Order = i
	s.sections[i] = updated
	return updated.Clone(), nil
}

// Remove deletes the section and re-packs order.
func (s *SectionStore) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("section %q: %w", id, domain.ErrNotFound)
	}
	s.sections = append(s.sections[:i], s.sections[i+1:]...)
	s.renumber()
	return nil
}

// Reorder moves the section at from to index to and reassigns order.
func (s *SectionStore) Reorder(from, to int) error {
	n := len(s.sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d with %d sections", domain.ErrIndexOutOfRange, from, to, n)
	}
	moved := s.sections[from]
	rest := append(s.sections[:from:from], s.sections[from+1:]...)
	out := make([]domain.Section, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	s.sections = out
	s.renumber()
	return nil
}

// Get returns a copy of one section.
func (s *SectionStore) Get(id string) (domain.Section, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Section{}, fmt.Errorf("section %q: %w", id, domain.ErrNotFound)
	}
	return s.sections[i].Clone(), nil
}

// Index returns the position of a section, or -1.
func (s *SectionStore) Index(id string) int {
	return s.indexOf(id)
}

// List returns copies of all sections in order.
func (s *SectionStore) List() []domain.Section {
	out := make([]domain.Section, len(s.sections))
	for i := range s.sections {
		out[i] = s.sections[i].Clone()
	}
	return out
}

// Len returns the section count.
func (s *SectionStore) Len() int { return len(s.sections) }

// Replace swaps in a whole section list, sorted by its order field with
// order then re-packed from zero. Duplicate IDs or unknown types are rejected.
func (s *SectionStore) Replace(sections []domain.Section) error {
	seen := make(map[string]struct{}, len(sections))
	for _, sec := range sections {
		if sec.ID == "" {
			return fmt.Errorf("%w: section id is required", domain.ErrInvalidInput)
		}
		if !sec.Type.IsValid() {
			return fmt.Errorf("%w: section type %q", domain.ErrUnsupportedType, sec.Type)
		}
		if _, dup := seen[sec.ID]; dup {
			return fmt.Errorf("section %q: %w", sec.ID, domain.ErrAlreadyExists)
		}
		seen[sec.ID] = struct{}{}
	}

	out := make([]domain.Section, len(sections))
	for i := range sections {
		out[i] = sections[i].Clone()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	s.sections = out
	s.renumber()
	return nil
}

func (s *SectionStore) indexOf(id string) int {
	for i := range s.sections {
		if s.sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SectionStore) renumber() {
	for i := range s.sections {
		s.sections[i].Order = i
	}
}
