// Package fontstore keeps calibrated fonts available to the server by name.
//
// Fonts are stored in the JSON artifact format produced by ocr.FontDefinition,
// so a font calibrated once can be saved, shipped and loaded again without
// changing any recognition result.
package fontstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// ErrUnknownFont is returned by Get for names that were never registered.
var ErrUnknownFont = errors.New("unknown font")

// Store is a thread-safe registry of fonts keyed by name.
//
// Registered fonts are shared between callers and must be treated as
// read-only; recognition never modifies a FontDefinition.
type Store struct {
	mu    sync.RWMutex
	fonts map[string]*ocr.FontDefinition
	log   *slog.Logger
}

// New creates an empty store that logs to slog.Default.
func New() *Store {
	return NewWithLogger(nil)
}

// NewWithLogger creates an empty store that reports skipped fonts to logger.
// A nil logger means slog.Default.
func NewWithLogger(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		fonts: make(map[string]*ocr.FontDefinition),
		log:   logger,
	}
}

// Put registers font under name, replacing any font already stored there.
func (s *Store) Put(name string, font *ocr.FontDefinition) error {
	if name == "" {
		return fmt.Errorf("font name must not be empty")
	}
	if font == nil {
		return fmt.Errorf("font %q is nil", name)
	}
	if err := font.Validate(); err != nil {
		return fmt.Errorf("invalid font %q: %w", name, err)
	}
	s.mu.Lock()
	s.fonts[name] = font
	s.mu.Unlock()
	return nil
}

// Get returns the font registered under name.
func (s *Store) Get(name string) (*ocr.FontDefinition, error) {
	s.mu.RLock()
	font, ok := s.fonts[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	return font, nil
}

// Remove drops name from the store. Unknown names are ignored.
func (s *Store) Remove(name string) {
	s.mu.Lock()
	delete(s.fonts, name)
	s.mu.Unlock()
}

// Names lists the registered fonts in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.fonts))
	for name := range s.fonts {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Summary describes a registered font without its glyph data.
type Summary struct {
	Name       string `json:"name"`
	Chars      string `json:"chars"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BaseY      int    `json:"basey"`
	SpaceWidth int    `json:"spacewidth"`
	Shadow     bool   `json:"shadow"`
}

// List returns a summary of every registered font, ordered by name.
func (s *Store) List() []Summary {
	names := s.Names()
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		font, err := s.Get(name)
		if err != nil {
			// removed concurrently
			continue
		}
		out = append(out, Summarize(name, font))
	}
	return out
}

// Summarize describes font as registered under name.
func Summarize(name string, font *ocr.FontDefinition) Summary {
	var chars strings.Builder
	for _, c := range font.Chars {
		chars.WriteString(c.Chr)
	}
	return Summary{
		Name:       name,
		Chars:      chars.String(),
		Width:      font.Width,
		Height:     font.Height,
		BaseY:      font.BaseY,
		SpaceWidth: font.SpaceWidth,
		Shadow:     font.Shadow,
	}
}

// LoadFile reads a font from a JSON file and registers it under name.
func (s *Store) LoadFile(name, path string) (*ocr.FontDefinition, error) {
	font, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := s.Put(name, font); err != nil {
		return nil, err
	}
	return font, nil
}

// LoadDir registers every *.json font in dir under its file name without
// the extension. It returns the names that were loaded. Files that fail to
// parse are logged and skipped so one broken font does not hide the rest.
func (s *Store) LoadDir(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list font directory: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to open font directory: %w", err)
	}
	sort.Strings(paths)

	var loaded []string
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, err := s.LoadFile(name, path); err != nil {
			s.log.Warn("skipping font", "path", path, "error", err)
			continue
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}

// ReadFile decodes and validates a font file.
func ReadFile(path string) (*ocr.FontDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	var font ocr.FontDefinition
	if err := json.Unmarshal(data, &font); err != nil {
		return nil, fmt.Errorf("failed to decode font %s: %w", path, err)
	}
	if err := font.Validate(); err != nil {
		return nil, fmt.Errorf("invalid font %s: %w", path, err)
	}
	return &font, nil
}

// WriteFile saves font as JSON, creating parent directories as needed.
func WriteFile(path string, font *ocr.FontDefinition) error {
	data, err := json.Marshal(font)
	if err != nil {
		return fmt.Errorf("failed to encode font: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create font directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write font: %w", err)
	}
	return nil
}
