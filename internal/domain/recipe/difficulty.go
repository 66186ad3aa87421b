package recipe

// Difficulty represents how hard a recipe is to prepare. The numeric values
// are part of the wire format and must stay stable.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "easy",
	DifficultyMedium: "medium",
	DifficultyHard:   "hard",
}

var namedDifficulties = func() map[string]Difficulty {
	m := make(map[string]Difficulty, len(difficultyNames))
	for d, name := range difficultyNames {
		m[name] = d
	}
	return m
}()

// String implements fmt.Stringer; unknown values render as "unknown"
func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether the difficulty is a known level
func (d Difficulty) Valid() bool {
	_, ok := difficultyNames[d]
	return ok
}

// ParseDifficulty converts a name back to a Difficulty
func ParseDifficulty(name string) (Difficulty, error) {
	d, ok := namedDifficulties[name]
	if !ok {
		return 0, ErrUnknownDifficulty
	}
	return d, nil
}
