package game

// Physics, in world units (one unit is roughly the dino's height) and seconds.
const (
	Gravity      = 9.81 * 2
	JumpImpulse  = 8.0
	GroundedBias = 1.0 // downward push while standing, keeps ground contact
)

// Dino placement and size.
const (
	DinoX      = 2.0
	DinoWidth  = 0.8
	DinoHeight = 1.0
)

// Obstacles.
const (
	SpawnX            = 20.0
	DespawnX          = -2.0
	MinSpawnInterval  = 1.0
	MaxSpawnInterval  = 2.0
	MinObstacleWidth  = 0.5
	MaxObstacleWidth  = 1.0
	MinObstacleHeight = 0.6
	MaxObstacleHeight = 1.2
)

// Scoring.
const (
	InitialSpeed     = 5.0
	SpeedIncrease    = 0.1
	FeedbackDuration = 3.0
)

// Milestones are the scores that show a short congratulation.
var Milestones = []int{0, 20, 50, 100, 200, 300, 500, 750}
