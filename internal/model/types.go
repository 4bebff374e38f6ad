// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	Lang           string
	Mode           string
	Words          int
	Duration       time.Duration
	CapsPct        float64
	PunctPct       float64
	PunctSet       string
	AllowBackspace bool
	// ValidateWords refuses to advance while a mistake is outstanding.
	// Perfection mode always sets it.
	ValidateWords bool
}
