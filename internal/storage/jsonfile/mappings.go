// Package jsonfile хранит подтверждённые соответствия в json-файле
// вида {"наименование": {"connection": ..., "rad_type": ..., "meteor_art": ..., "meteor_name": ...}}.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
	"sort"
	"sync"
	"time"
)

type record struct {
	Connection  string `json:"connection"`
	RadType     string `json:"rad_type"`
	Article     string `json:"meteor_art"`
	Name        string `json:"meteor_name"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
}

type Storage struct {
	path string

	mu      sync.Mutex
	records map[string]record
}

// New читает файл, отсутствующий файл означает пустой набор.
func New(path string) (*Storage, error) {
	const op = "storage.jsonfile.New"

	s := &Storage{path: path, records: make(map[string]record)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("%s: битый файл соответствий %s: %w", op, path, err)
	}

	return s, nil
}

func (s *Storage) GetMappings(ctx context.Context) ([]storage.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)

	res := make([]storage.Mapping, 0, len(names))
	for _, name := range names {
		res = append(res, s.records[name].toMapping(name))
	}

	return res, nil
}

// SaveMapping добавляет или заменяет запись и сразу пишет файл целиком.
func (s *Storage) SaveMapping(ctx context.Context, m storage.Mapping) error {
	const op = "storage.jsonfile.SaveMapping"

	if m.CompetitorName == "" {
		return fmt.Errorf("%s: пустое наименование", op)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[m.CompetitorName]
	s.records[m.CompetitorName] = fromMapping(m)

	if err := s.flush(); err != nil {
		if existed {
			s.records[m.CompetitorName] = prev
		} else {
			delete(s.records, m.CompetitorName)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) flush() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.records); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func fromMapping(m storage.Mapping) record {
	r := record{
		Connection: m.Connection.Label(),
		RadType:    m.RadiatorType,
		Article:    m.Article,
		Name:       m.Name,
	}
	if r.Connection == "" {
		r.Connection = string(m.Connection)
	}
	if !m.ConfirmedAt.IsZero() {
		r.ConfirmedAt = m.ConfirmedAt.UTC().Format(time.RFC3339)
	}
	return r
}

func (r record) toMapping(name string) storage.Mapping {
	m := storage.Mapping{
		CompetitorName: name,
		RadiatorType:   r.RadType,
		Article:        r.Article,
		Name:           r.Name,
	}
	if c, ok := constants.ParseConnection(r.Connection); ok {
		m.Connection = c
	}
	if t, err := time.Parse(time.RFC3339, r.ConfirmedAt); err == nil {
		m.ConfirmedAt = t
	}
	return m
}
