package storage

import (
	"errors"
	"regexp"
	"sync"

	"github.com/justinkworkman/FastChart/internal/render"
)

const maxPaletteColors = 16

var (
	// ErrInvalidPalette indicates the provided colors violate validation rules.
	ErrInvalidPalette = errors.New("palette must contain between 1 and 16 hex colors like #4CAF50")
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Storage provides access to the default color palette applied to charts that
// do not carry their own colors.
type Storage interface {
	GetPalette() ([]string, error)
	SetPalette(colors []string) error
}

// MemoryStorage keeps the palette in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu      sync.RWMutex
	palette []string
}

// NewMemoryStorage initialises storage with a copy of the default palette.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		palette: clonePalette(render.DefaultPalette),
	}
}

// DefaultPalette returns a copy of the default palette slice.
func DefaultPalette() []string {
	return clonePalette(render.DefaultPalette)
}

// GetPalette returns a defensive copy of the currently configured palette.
func (s *MemoryStorage) GetPalette() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePalette(s.palette), nil
}

// SetPalette validates and stores the provided colors. Order is preserved
// because charts cycle through the palette by group index.
func (s *MemoryStorage) SetPalette(colors []string) error {
	if err := ValidatePalette(colors); err != nil {
		return err
	}

	s.mu.Lock()
	s.palette = clonePalette(colors)
	s.mu.Unlock()

	return nil
}

// ValidatePalette checks the color list size and that every entry is a hex color.
func ValidatePalette(colors []string) error {
	if len(colors) == 0 || len(colors) > maxPaletteColors {
		return ErrInvalidPalette
	}
	for _, c := range colors {
		if !hexColorPattern.MatchString(c) {
			return ErrInvalidPalette
		}
	}
	return nil
}

func clonePalette(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
