// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves platform credentials. A credential can arrive as
// a flag value, an environment variable, or a plain-text file in a secrets
// directory (filename is the key name, trimmed contents are the value).
// Flags win over environment, environment wins over files.
//
// Supported key files: mindsdb-api-key, gemini-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds credentials loaded from a secrets directory.
type Store struct {
	values map[string]string
}

// Load reads all files in dir into a Store. A missing directory is not an
// error; unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (*Store, error) {
	s := &Store{values: make(map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s.values[entry.Name()] = value
		}
	}
	return s, nil
}

// Resolve returns the first non-empty source for a credential: the flag
// value, then each environment variable in order, then the secrets file
// named key.
func (s *Store) Resolve(flagValue, key string, envVars ...string) string {
	if flagValue != "" {
		return flagValue
	}
	for _, env := range envVars {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return s.values[key]
}

// Keys lists the loaded secret names, for startup logging. Values never
// leave the store.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
