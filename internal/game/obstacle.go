package game

import "math/rand/v2"

// Box is an axis-aligned rectangle. X and Y locate the bottom-left corner.
type Box struct {
	X, Y, W, H float64
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Obstacle is a cactus standing on the ground.
type Obstacle struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the obstacle's collision box.
func (o Obstacle) Bounds() Box {
	return Box{X: o.X, Y: 0, W: o.Width, H: o.Height}
}

// Spawner places obstacles at random intervals and scrolls them toward the dino.
type Spawner struct {
	rng       *rand.Rand
	untilNext float64
	nextID    int
	obstacles []Obstacle
}

// NewSpawner creates a Spawner. A nil rng uses a randomly seeded source.
func NewSpawner(rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Spawner{rng: rng}
	s.Reset()
	return s
}

// Reset removes every obstacle and schedules the first spawn.
func (s *Spawner) Reset() {
	s.obstacles = s.obstacles[:0]
	s.untilNext = s.interval()
}

// Step scrolls obstacles left at speed units per second, drops those that
// left the screen and spawns new ones when due.
func (s *Spawner) Step(dt, speed float64) {
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.X -= speed * dt
		if o.X+o.Width >= DespawnX {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept

	s.untilNext -= dt
	if s.untilNext <= 0 {
		s.spawn()
		s.untilNext = s.interval()
	}
}

// Obstacles returns a copy of the live obstacles, nearest first.
func (s *Spawner) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Collides reports whether any obstacle overlaps the box.
func (s *Spawner) Collides(b Box) bool {
	for _, o := range s.obstacles {
		if o.Bounds().Overlaps(b) {
			return true
		}
	}
	return false
}

func (s *Spawner) spawn() {
	s.nextID++
	s.obstacles = append(s.obstacles, Obstacle{
		ID:     s.nextID,
		X:      SpawnX,
		Width:  between(s.rng, MinObstacleWidth, MaxObstacleWidth),
		Height: between(s.rng, MinObstacleHeight, MaxObstacleHeight),
	})
}

func (s *Spawner) interval() float64 {
	return between(s.rng, MinSpawnInterval, MaxSpawnInterval)
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
