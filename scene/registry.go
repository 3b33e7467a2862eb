package scene

// Registry is the state shared across scenes: the running score and the
// level being played.
type Registry struct {
	score        int
	currentLevel string
	levelName    string
	levelNumber  int
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Score() int { return r.score }

func (r *Registry) AddScore(n int) { r.score += n }

func (r *Registry) SetScore(n int) { r.score = n }

// CurrentLevel returns the id of the level being played.
func (r *Registry) CurrentLevel() string { return r.currentLevel }

// LevelNumber is 1 for the first level of a run and grows as levels are
// completed.
func (r *Registry) LevelNumber() int { return r.levelNumber }

func (r *Registry) LevelName() string {
	if r.levelName != "" {
		return r.levelName
	}
	return r.currentLevel
}

// EnterLevel records the level a scene is playing. Re-entering the same
// level keeps the level number.
func (r *Registry) EnterLevel(id, name string) {
	if r.levelNumber == 0 {
		r.levelNumber = 1
	}
	r.currentLevel = id
	r.levelName = name
}

// AdvanceLevel moves the run on to the next level.
func (r *Registry) AdvanceLevel(next string) {
	r.levelNumber++
	r.currentLevel = next
	r.levelName = ""
}

// Reset starts a new run.
func (r *Registry) Reset() {
	*r = Registry{}
}
