package storage

import (
	"fmt"

	"github.com/quasilyte/gdata"
)

// GDataStore keeps key/value pairs as items in the user's application data
// directory, one file per key.
type GDataStore struct {
	m *gdata.Manager
}

// OpenGData opens (creating if needed) the data directory for appName.
func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %q: %w", appName, err)
	}
	return &GDataStore{m: m}, nil
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *GDataStore) Get(key string) (string, bool, error) {
	if !s.m.ItemExists(key) {
		return "", false, nil
	}
	data, err := s.m.LoadItem(key)
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load item %q: %w", key, err)
	}
	if data == nil {
		return "", false, nil
	}
	return string(data), true, nil
}

// Set stores value under key, replacing any previous value.
func (s *GDataStore) Set(key, value string) error {
	if err := s.m.SaveItem(key, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save item %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *GDataStore) Delete(key string) error {
	if !s.m.ItemExists(key) {
		return nil
	}
	if err := s.m.DeleteItem(key); err != nil {
		return fmt.Errorf("storage: cannot delete item %q: %w", key, err)
	}
	return nil
}
