package filter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shhac/prdash/internal/store"
)

// Persisted keys. The version suffixes survive from earlier snapshot
// formats; bump them when the shape changes.
const (
	filtersKey = "filters_state_v2"
	presetsKey = "filters_presets_v1"
)

// Preset is a named, persisted snapshot of a complete filter state.
type Preset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Filters   State  `json:"filters"`
	CreatedAt int64  `json:"createdAt"` // unix millis
	UpdatedAt int64  `json:"updatedAt"`
}

// Store persists the filter snapshot and the preset list through a KV.
type Store struct {
	kv  store.KV
	now func() time.Time
}

// NewStore wraps kv.
func NewStore(kv store.KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// SaveFilters persists the normalized snapshot.
func (s *Store) SaveFilters(f State) error {
	data, err := json.Marshal(Normalize(f))
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}
	return s.kv.Set(filtersKey, string(data))
}

// LoadFilters returns the persisted snapshot, or ok=false when nothing
// usable is stored.
func (s *Store) LoadFilters() (State, bool) {
	raw, ok := s.kv.Get(filtersKey)
	if !ok {
		return State{}, false
	}
	var f State
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return State{}, false
	}
	return Normalize(f), true
}

// Presets returns the persisted preset list. Entries without an id or
// name are dropped; a malformed list reads as empty.
func (s *Store) Presets() []Preset {
	raw, ok := s.kv.Get(presetsKey)
	if !ok {
		return nil
	}

	var decoded []Preset
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}

	presets := decoded[:0]
	for _, p := range decoded {
		if p.ID == "" || p.Name == "" {
			continue
		}
		p.Filters = Normalize(p.Filters)
		presets = append(presets, p)
	}
	return presets
}

func (s *Store) savePresets(presets []Preset) error {
	data, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	return s.kv.Set(presetsKey, string(data))
}

// FindByName matches case-insensitively after trimming.
func (s *Store) FindByName(name string) (Preset, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range s.Presets() {
		if strings.ToLower(strings.TrimSpace(p.Name)) == want {
			return p, true
		}
	}
	return Preset{}, false
}

// Create stores a new preset at the head of the list and returns it.
// Callers check FindByName first; saving over an existing name goes
// through Overwrite after explicit confirmation.
func (s *Store) Create(name string, f State) (Preset, error) {
	presets := s.Presets()
	nowMillis := s.now().UnixMilli()

	p := Preset{
		ID:        s.freshID(presets, nowMillis),
		Name:      strings.TrimSpace(name),
		Filters:   Normalize(f),
		CreatedAt: nowMillis,
		UpdatedAt: nowMillis,
	}

	next := append([]Preset{p}, presets...)
	if err := s.savePresets(next); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Overwrite replaces the filters of the preset with the given id, keeping
// its id and creation time and bumping updatedAt.
func (s *Store) Overwrite(id, name string, f State) (Preset, error) {
	presets := s.Presets()
	for i, p := range presets {
		if p.ID != id {
			continue
		}
		p.Name = strings.TrimSpace(name)
		p.Filters = Normalize(f)
		p.UpdatedAt = s.now().UnixMilli()
		presets[i] = p
		if err := s.savePresets(presets); err != nil {
			return Preset{}, err
		}
		return p, nil
	}
	return Preset{}, fmt.Errorf("preset %s not found", id)
}

// Delete removes the preset with the given id. Reports whether anything
// was removed.
func (s *Store) Delete(id string) (bool, error) {
	presets := s.Presets()
	next := presets[:0]
	for _, p := range presets {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(presets) {
		return false, nil
	}
	return true, s.savePresets(next)
}

// ResolveActive scans for a preset whose filters exactly equal current.
// The active preset is always recomputed this way, never tracked as
// separate state, so the chip row can not drift from the stored filters.
func (s *Store) ResolveActive(current State) (Preset, bool) {
	for _, p := range s.Presets() {
		if Equal(p.Filters, current) {
			return p, true
		}
	}
	return Preset{}, false
}

// freshID derives an id from the creation time, nudged past any collision
// with an existing preset saved in the same millisecond.
func (s *Store) freshID(presets []Preset, nowMillis int64) string {
	taken := make(map[string]bool, len(presets))
	for _, p := range presets {
		taken[p.ID] = true
	}
	id := strconv.FormatInt(nowMillis, 10)
	for taken[id] {
		nowMillis++
		id = strconv.FormatInt(nowMillis, 10)
	}
	return id
}
