// Package t2048 implements the 2048 sliding-tile rule engine and the
// classic and campaign game modes built on it.
//
// The engine is a set of pure functions over immutable boards: ReduceRow
// compresses one row toward index 0, Move rotates the board so every
// direction becomes a left slide, Spawner places new tiles from an
// injectable random source, and HasLegalMove is the terminal check.
package t2048

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Tile value that clears the level
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Levels defines the campaign. The board carries over between levels, so
// each target only has to be reached once; later levels raise the spawn-4
// probability, which crowds the board faster.
var Levels = []Level{
	{ID: 1, Name: "Warm-up", Target: 128, Spawn4: 0.10},
	{ID: 2, Name: "Getting Started", Target: 256, Spawn4: 0.10},
	{ID: 3, Name: "Building Momentum", Target: 512, Spawn4: 0.10},
	{ID: 4, Name: "The Climb", Target: 1024, Spawn4: 0.10},
	{ID: 5, Name: "Classic 2048", Target: 2048, Spawn4: 0.10},
	{ID: 6, Name: "Beyond Limits", Target: 4096, Spawn4: 0.12},
	{ID: 7, Name: "Master Class", Target: 8192, Spawn4: 0.15},
	{ID: 8, Name: "Expert Challenge", Target: 16384, Spawn4: 0.18},
	{ID: 9, Name: "Grandmaster", Target: 32768, Spawn4: 0.20},
	{ID: 10, Name: "Ultimate Champion", Target: 65536, Spawn4: 0.25},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based), or nil.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets() []int {
	targets := make([]int, len(Levels))
	for i, lvl := range Levels {
		targets[i] = lvl.Target
	}
	return targets
}
