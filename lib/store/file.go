// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// document is the on-disk shape. It is kept byte-compatible with the
// store.json documents written by earlier deployments:
//
//	{"guilds":{"<gid>":{"users":{"<uid>":{"count":N}},"lockedCategories":["<cid>",...]}}}
type document struct {
	Guilds map[string]*guildState `json:"guilds"`
}

type guildState struct {
	Users            map[string]*userState `json:"users"`
	LockedCategories []string              `json:"lockedCategories"`
}

type userState struct {
	Count int `json:"count"`
}

// FileStore is a Store backed by a single JSON document. The document
// lives in memory; every mutation rewrites the file under the store
// mutex, via a temp file renamed over the target. That is atomic
// enough for single-process use, which is the deployment model here.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu  sync.Mutex
	doc document
}

// Open loads the document at path, or starts empty when the file is
// missing. An unreadable or corrupt document also starts empty (fails
// open) with a logged warning rather than refusing to boot: losing
// quota counters is recoverable, a bot that cannot start is not.
func Open(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &FileStore{
		path:   path,
		logger: logger,
		doc:    document{Guilds: map[string]*guildState{}},
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		logger.Warn("store unreadable, starting empty", "path", path, "error", err)
		return s, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("store corrupt, starting empty", "path", path, "error", err)
		return s, nil
	}
	if doc.Guilds == nil {
		doc.Guilds = map[string]*guildState{}
	}
	s.doc = doc
	return s, nil
}

// guild returns the state for guildID, creating empty state on first
// reference. Callers must hold s.mu.
func (s *FileStore) guild(guildID string) *guildState {
	g, ok := s.doc.Guilds[guildID]
	if !ok {
		g = &guildState{Users: map[string]*userState{}, LockedCategories: []string{}}
		s.doc.Guilds[guildID] = g
	}
	if g.Users == nil {
		g.Users = map[string]*userState{}
	}
	return g
}

// save rewrites the document. Callers must hold s.mu.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}

func (s *FileStore) UserCount(guildID, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.guild(guildID).Users[userID]
	if !ok {
		return 0
	}
	return u.Count
}

func (s *FileStore) SetUserCount(guildID, userID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.guild(guildID)
	u, ok := g.Users[userID]
	if !ok {
		u = &userState{}
		g.Users[userID] = u
	}
	u.Count = count
	return s.save()
}

func (s *FileStore) ResetAllCounts(guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).Users = map[string]*userState{}
	return s.save()
}

func (s *FileStore) ReserveCreate(guildID, userID string, max int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.guild(guildID)
	u, ok := g.Users[userID]
	if !ok {
		u = &userState{}
		g.Users[userID] = u
	}
	if u.Count >= max {
		return u.Count, false, nil
	}
	u.Count++
	if err := s.save(); err != nil {
		u.Count--
		return u.Count, false, err
	}
	return u.Count, true, nil
}

func (s *FileStore) ReleaseCreate(guildID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.guild(guildID).Users[userID]
	if !ok || u.Count == 0 {
		return nil
	}
	u.Count--
	return s.save()
}

func (s *FileStore) IsLockedCategory(guildID, categoryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.guild(guildID).LockedCategories, categoryID)
}

func (s *FileStore) AddLockedCategory(guildID, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.guild(guildID)
	if slices.Contains(g.LockedCategories, categoryID) {
		return nil
	}
	g.LockedCategories = append(g.LockedCategories, categoryID)
	return s.save()
}

func (s *FileStore) RemoveLockedCategory(guildID, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.guild(guildID)
	i := slices.Index(g.LockedCategories, categoryID)
	if i < 0 {
		return nil
	}
	g.LockedCategories = slices.Delete(g.LockedCategories, i, i+1)
	return s.save()
}

func (s *FileStore) LockedCategories(guildID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.guild(guildID).LockedCategories)
}

var _ Store = (*FileStore)(nil)
