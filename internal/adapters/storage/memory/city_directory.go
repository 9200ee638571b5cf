// Package memory provides in-process implementations of the ports.
package memory

import (
	"context"
	"sync"

	"github.com/jsamuelsen/localized-problems/internal/domain"
)

// Namur is registered by NewCityDirectory and can never be deleted.
var Namur = domain.City{Name: "Namur", CountryCode: "BE"}

type entry struct {
	city      domain.City
	protected bool
}

// CityDirectory implements ports.CityDirectory over an in-memory list.
// It is safe for concurrent use.
type CityDirectory struct {
	mu      sync.RWMutex
	entries []entry
}

// NewCityDirectory returns a directory holding the protected city Namur.
func NewCityDirectory() *CityDirectory {
	d := &CityDirectory{}
	d.Add(Namur, true)

	return d
}

// Add registers a city. Names are compared case-insensitively, so adding a
// known name replaces its entry.
func (d *CityDirectory) Add(city domain.City, protected bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.entries {
		if d.entries[i].city.SameName(city.Name) {
			d.entries[i] = entry{city: city, protected: protected}
			return
		}
	}

	d.entries = append(d.entries, entry{city: city, protected: protected})
}

// Exists implements ports.CityDirectory.
func (d *CityDirectory) Exists(_ context.Context, name string) (bool, error) {
	_, ok := d.find(name)
	return ok, nil
}

// Protected implements ports.CityDirectory.
func (d *CityDirectory) Protected(_ context.Context, name string) (bool, error) {
	e, ok := d.find(name)
	return ok && e.protected, nil
}

func (d *CityDirectory) find(name string) (entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, e := range d.entries {
		if e.city.SameName(name) {
			return e, true
		}
	}

	return entry{}, false
}
