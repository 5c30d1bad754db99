package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy defines the interface for slideshow ordering strategies.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

func copyPaths(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	return result
}

// SimpleSortStrategy orders lexicographically by full path string. This is
// the default slideshow order.
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := copyPaths(images)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// NaturalSortStrategy orders with embedded numbers compared numerically
// (img2 before img10) using maruel/natural.
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := copyPaths(images)
	sort.Slice(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// EntryOrderSortStrategy preserves the order the locator produced.
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(images []ImagePath) []ImagePath {
	return copyPaths(images)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// GetSortStrategy returns the strategy for the given sort method ID,
// falling back to simple lexicographic order.
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &SimpleSortStrategy{}
	}
}

// GetAllSortStrategies returns all available sort strategies in cycling
// order.
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&SimpleSortStrategy{},
		&NaturalSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}

// sortImagePaths sorts images with the configured strategy, returning a
// new slice.
func sortImagePaths(images []ImagePath, sortMethod int) []ImagePath {
	return GetSortStrategy(sortMethod).Sort(images)
}
