package game

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"phonicscode/internal/assets"
	"phonicscode/internal/playback"
	"phonicscode/internal/quiz"
)

// Config assembles a Controller's collaborators.
type Config struct {
	Game   Kind
	Store  *quiz.Store
	Assets *assets.Resolver
	Player playback.Player

	// FeedbackDelay is the minimum duration of the correct-answer feedback,
	// even when its audio finishes sooner.
	FeedbackDelay time.Duration

	// TutorialSeen skips the tutorial state when the player has already
	// dismissed it.
	TutorialSeen bool

	// OnCorrect fires once per correctly answered problem. OnComplete fires
	// once when the level's last problem is answered. Both may be nil and
	// both run on the controller's advance goroutine.
	OnCorrect  func(pos quiz.Position)
	OnComplete func(pos quiz.Position)
}

// Controller runs one player's session of one game. All exported methods are
// safe for concurrent use.
type Controller struct {
	cfg     Config
	channel *playback.Channel

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     State
	pos       quiz.Position
	problem   *Problem
	advancing bool
	closed    bool
}

// Snapshot is a point-in-time copy of the controller's visible state.
type Snapshot struct {
	State   State
	Pos     quiz.Position
	Problem *Problem
}

// NewController creates a controller in the Loading state. Call Start to
// load the first problem.
func NewController(cfg Config) *Controller {
	if cfg.Player == nil {
		cfg.Player = playback.Immediate{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		cfg:     cfg,
		channel: playback.NewChannel(cfg.Player),
		ctx:     ctx,
		cancel:  cancel,
		state:   Loading,
	}
}

// Start loads the problem at pos and settles into the first interactive
// state. A position with no matching row moves the controller to Failed.
func (c *Controller) Start(ctx context.Context, pos quiz.Position) error {
	problem, err := c.load(ctx, pos)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("controller is closed")
	}
	if err != nil {
		c.state = Failed
		return err
	}

	c.pos = pos
	c.problem = problem
	switch {
	case !c.cfg.TutorialSeen:
		c.state = Tutorial
	case pos.Problem == 1:
		c.state = UnitIntro
	default:
		c.state = Awaiting
	}
	return nil
}

// DismissTutorial leaves the tutorial overlay. Outside the Tutorial state it
// does nothing.
func (c *Controller) DismissTutorial() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Tutorial {
		return
	}
	c.cfg.TutorialSeen = true
	if c.pos.Problem == 1 {
		c.state = UnitIntro
	} else {
		c.state = Awaiting
	}
}

// BeginProblems leaves the unit introduction. Outside the UnitIntro state it
// does nothing.
func (c *Controller) BeginProblems() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == UnitIntro {
		c.state = Awaiting
	}
}

// Resolve submits an answer. A wrong answer keeps the problem open and
// returns false. A correct answer starts the feedback playback and, once it
// finishes, advances to the next problem; repeated submissions during that
// window are ignored. Resolve only acts in the Awaiting state.
func (c *Controller) Resolve(answer string) bool {
	c.mu.Lock()
	if c.state != Awaiting || c.advancing || c.problem == nil {
		c.mu.Unlock()
		return false
	}
	if answer != correctAnswer(c.cfg.Game, c.problem.Row) {
		c.mu.Unlock()
		return false
	}

	c.state = Resolving
	c.advancing = true
	problem := c.problem
	pos := c.pos
	c.mu.Unlock()

	if c.cfg.OnCorrect != nil {
		c.cfg.OnCorrect(pos)
	}

	go c.finishAndAdvance(problem, pos)
	return true
}

// finishAndAdvance plays the feedback sequence and then moves to the next
// position. It runs on its own goroutine; the advancing latch guarantees at
// most one is in flight.
func (c *Controller) finishAndAdvance(problem *Problem, pos quiz.Position) {
	seq := playback.NewSequence(c.channel, c.cfg.FeedbackDelay)
	if err := seq.Run(c.ctx, feedbackSources(c.cfg.Game, problem)...); err != nil {
		// Close canceled the session mid-feedback; do not advance.
		return
	}

	table := c.cfg.Store.QuizTable(c.ctx)
	lastUnit, _ := quiz.LastUnitAndProblem(table, pos.Level)
	next, complete := quiz.NextPosition(pos, lastUnit, table.CountProblemsInUnit(pos.Level, pos.Unit))

	if complete {
		c.mu.Lock()
		if !c.closed {
			c.state = Complete
		}
		closed := c.closed
		c.mu.Unlock()
		if !closed && c.cfg.OnComplete != nil {
			c.cfg.OnComplete(pos)
		}
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = Advancing
	c.mu.Unlock()

	nextProblem, err := c.load(c.ctx, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err != nil {
		log.Printf("Failed to load next problem %+v: %v", next, err)
		c.state = Failed
		c.advancing = false
		return
	}

	c.pos = next
	c.problem = nextProblem
	if next.Problem == 1 {
		c.state = UnitIntro
	} else {
		c.state = Awaiting
	}
	// The latch opens only after the next problem is fully loaded.
	c.advancing = false
}

// load fetches the row at pos and assembles its view.
func (c *Controller) load(ctx context.Context, pos quiz.Position) (*Problem, error) {
	row, err := c.cfg.Store.FindRow(ctx, pos)
	if err != nil {
		return nil, err
	}
	table := c.cfg.Store.QuizTable(ctx)
	units := c.cfg.Store.Units(ctx)
	return buildProblem(c.cfg.Game, table, units, row, pos, c.cfg.Assets), nil
}

// Snapshot returns the current state, position and problem view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Pos: c.pos, Problem: c.problem}
}

// Close tears the session down. In-flight feedback is canceled and no
// further advance happens.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.channel.Stop()
}
