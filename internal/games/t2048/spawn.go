package t2048

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// RandomSource is the randomness a Spawner needs. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Spawner places new tiles on empty cells.
type Spawner struct {
	Source     RandomSource
	Spawn4Prob float64
}

// NewSpawner returns a spawner with the default 2/4 weighting.
func NewSpawner(src RandomSource) Spawner {
	return Spawner{Source: src, Spawn4Prob: DefaultSpawn4Prob}
}

// Spawn writes a 2 or a 4 into a uniformly chosen empty cell.
// On a full board the input is returned unchanged with ok == false.
func (s Spawner) Spawn(b Board) (next Board, at Cell, ok bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return b, Cell{}, false
	}

	at = empty[s.Source.Intn(len(empty))]

	value := 2
	if s.Source.Float64() < s.Spawn4Prob {
		value = 4
	}

	return b.With(at.Row, at.Col, value), at, true
}

// SpawnTile spawns one tile using the default weighting.
func SpawnTile(b Board, src RandomSource) Board {
	next, _, _ := NewSpawner(src).Spawn(b)
	return next
}
