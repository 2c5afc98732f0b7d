package core

// RuntimeConfig contains configuration passed to a round at initialization.
// The round uses it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for deterministic apple placement
	Player  string // Name recorded with saved scores
}
