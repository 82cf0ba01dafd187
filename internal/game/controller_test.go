package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"phonicscode/internal/assets"
	"phonicscode/internal/playback"
	"phonicscode/internal/quiz"
)

func testStore() *quiz.Store {
	mk := func(level, unit, problem int, word, phonetic string) quiz.Row {
		return quiz.Row{
			Level: level, Unit: unit, ProblemNumber: problem,
			Word: word, AnswerPhonetic: phonetic,
			SlotCharStart: 1, SlotCharEnd: 2,
			CorrectImagePath: "img/" + word + ".png",
			ShadowImagePath:  "img/" + word + "_s.png",
			CorrectAudioPath: "sound/" + word + ".mp3",
		}
	}
	table := quiz.Table{
		mk(1, 1, 1, "ball", "all"),
		mk(1, 1, 2, "tall", "all"),
		mk(1, 2, 1, "ring", "ing"),
	}
	units := []quiz.UnitRow{
		{Level: 1, Unit: 1, UnitName: "Unit One"},
		{Level: 1, Unit: 2, UnitName: "Unit Two"},
	}
	return quiz.NewStatic(table, units)
}

func testConfig(kind Kind) Config {
	return Config{
		Game:         kind,
		Store:        testStore(),
		Assets:       assets.NewResolver("https://cdn.example.com/play/"),
		Player:       playback.Immediate{},
		TutorialSeen: true,
	}
}

// waitForState polls until the controller reaches want or the deadline hits.
func waitForState(t *testing.T, c *Controller, want State) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap := c.Snapshot()
		if snap.State == want {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("state = %v, want %v", snap.State, want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestControllerFullSession(t *testing.T) {
	var correct []quiz.Position
	var completed []quiz.Position
	var mu sync.Mutex

	cfg := testConfig(Builder)
	cfg.OnCorrect = func(pos quiz.Position) {
		mu.Lock()
		correct = append(correct, pos)
		mu.Unlock()
	}
	cfg.OnComplete = func(pos quiz.Position) {
		mu.Lock()
		completed = append(completed, pos)
		mu.Unlock()
	}

	c := NewController(cfg)
	defer c.Close()

	if err := c.Start(context.Background(), quiz.DefaultPosition()); err != nil {
		t.Fatalf("Start returned %v", err)
	}

	// Problem 1 of a unit opens with the unit introduction.
	snap := waitForState(t, c, UnitIntro)
	if snap.Problem.UnitName != "Unit One" {
		t.Errorf("unit name = %q, want %q", snap.Problem.UnitName, "Unit One")
	}
	c.BeginProblems()

	// (1,1,1) -> (1,1,2)
	waitForState(t, c, Awaiting)
	if !c.Resolve("all") {
		t.Fatal("correct answer for (1,1,1) rejected")
	}
	snap = waitForState(t, c, Awaiting)
	if snap.Pos != (quiz.Position{Level: 1, Unit: 1, Problem: 2}) {
		t.Fatalf("pos = %+v, want (1,1,2)", snap.Pos)
	}

	// (1,1,2) -> (1,2,1), with a fresh unit introduction.
	if !c.Resolve("all") {
		t.Fatal("correct answer for (1,1,2) rejected")
	}
	snap = waitForState(t, c, UnitIntro)
	if snap.Pos != (quiz.Position{Level: 1, Unit: 2, Problem: 1}) {
		t.Fatalf("pos = %+v, want (1,2,1)", snap.Pos)
	}
	if snap.Problem.UnitName != "Unit Two" {
		t.Errorf("unit name = %q, want %q", snap.Problem.UnitName, "Unit Two")
	}
	c.BeginProblems()
	waitForState(t, c, Awaiting)

	// (1,2,1) is the level's last problem.
	if !c.Resolve("ing") {
		t.Fatal("correct answer for (1,2,1) rejected")
	}
	waitForState(t, c, Complete)

	mu.Lock()
	defer mu.Unlock()
	if len(correct) != 3 {
		t.Errorf("OnCorrect fired %d times, want 3", len(correct))
	}
	if len(completed) != 1 || completed[0] != (quiz.Position{Level: 1, Unit: 2, Problem: 1}) {
		t.Errorf("OnComplete calls = %+v, want one for (1,2,1)", completed)
	}
}

func TestControllerWrongAnswerKeepsProblemOpen(t *testing.T) {
	c := NewController(testConfig(Builder))
	defer c.Close()

	if err := c.Start(context.Background(), quiz.Position{Level: 1, Unit: 1, Problem: 2}); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	waitForState(t, c, Awaiting)

	if c.Resolve("ing") {
		t.Fatal("wrong answer accepted")
	}
	snap := c.Snapshot()
	if snap.State != Awaiting || snap.Pos.Problem != 2 {
		t.Errorf("after wrong answer state = %v pos = %+v, want Awaiting at problem 2", snap.State, snap.Pos)
	}
}

func TestControllerDoubleResolveAdvancesOnce(t *testing.T) {
	var fired int
	var mu sync.Mutex

	cfg := testConfig(Builder)
	cfg.OnCorrect = func(quiz.Position) {
		mu.Lock()
		fired++
		mu.Unlock()
	}
	// A long feedback floor keeps the controller in Resolving while the
	// duplicate submission arrives.
	cfg.FeedbackDelay = 200 * time.Millisecond

	c := NewController(cfg)
	defer c.Close()

	if err := c.Start(context.Background(), quiz.DefaultPosition()); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	c.BeginProblems()
	waitForState(t, c, Awaiting)

	if !c.Resolve("all") {
		t.Fatal("first correct answer rejected")
	}
	if c.Resolve("all") {
		t.Fatal("duplicate answer accepted while feedback was playing")
	}

	snap := waitForState(t, c, Awaiting)
	if snap.Pos != (quiz.Position{Level: 1, Unit: 1, Problem: 2}) {
		t.Fatalf("pos = %+v, want a single advance to (1,1,2)", snap.Pos)
	}
	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Errorf("OnCorrect fired %d times, want 1", fired)
	}
}

func TestControllerMissingRowFails(t *testing.T) {
	c := NewController(testConfig(Builder))
	defer c.Close()

	err := c.Start(context.Background(), quiz.Position{Level: 9, Unit: 9, Problem: 9})
	if !errors.Is(err, quiz.ErrRowNotFound) {
		t.Fatalf("Start returned %v, want ErrRowNotFound", err)
	}
	if snap := c.Snapshot(); snap.State != Failed {
		t.Errorf("state = %v, want Failed", snap.State)
	}
}

func TestControllerEmptyTableFails(t *testing.T) {
	cfg := testConfig(Builder)
	cfg.Store = quiz.NewStatic(nil, nil)

	c := NewController(cfg)
	defer c.Close()

	if err := c.Start(context.Background(), quiz.DefaultPosition()); !errors.Is(err, quiz.ErrRowNotFound) {
		t.Fatalf("Start returned %v, want ErrRowNotFound", err)
	}
}

func TestControllerCloseStopsAdvance(t *testing.T) {
	cfg := testConfig(Builder)
	cfg.FeedbackDelay = time.Hour

	c := NewController(cfg)
	if err := c.Start(context.Background(), quiz.DefaultPosition()); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	c.BeginProblems()
	waitForState(t, c, Awaiting)

	if !c.Resolve("all") {
		t.Fatal("correct answer rejected")
	}
	c.Close()

	// The canceled feedback must not advance the position.
	time.Sleep(20 * time.Millisecond)
	if snap := c.Snapshot(); snap.Pos != quiz.DefaultPosition() {
		t.Errorf("pos = %+v after Close, want no advance", snap.Pos)
	}
	if c.Resolve("all") {
		t.Error("Resolve accepted after Close")
	}
}

func TestControllerTutorialFlow(t *testing.T) {
	cfg := testConfig(Builder)
	cfg.TutorialSeen = false

	c := NewController(cfg)
	defer c.Close()

	if err := c.Start(context.Background(), quiz.DefaultPosition()); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	if snap := c.Snapshot(); snap.State != Tutorial {
		t.Fatalf("state = %v, want Tutorial", snap.State)
	}

	// BeginProblems does nothing while the tutorial is up.
	c.BeginProblems()
	if snap := c.Snapshot(); snap.State != Tutorial {
		t.Fatalf("BeginProblems left state %v, want Tutorial", snap.State)
	}

	c.DismissTutorial()
	if snap := c.Snapshot(); snap.State != UnitIntro {
		t.Fatalf("state = %v after dismiss at problem 1, want UnitIntro", snap.State)
	}
}

func TestControllerTutorialDismissMidUnit(t *testing.T) {
	cfg := testConfig(Builder)
	cfg.TutorialSeen = false

	c := NewController(cfg)
	defer c.Close()

	if err := c.Start(context.Background(), quiz.Position{Level: 1, Unit: 1, Problem: 2}); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	c.DismissTutorial()
	if snap := c.Snapshot(); snap.State != Awaiting {
		t.Fatalf("state = %v after dismiss mid-unit, want Awaiting", snap.State)
	}
}

func TestShadowProblemView(t *testing.T) {
	c := NewController(testConfig(Shadow))
	defer c.Close()

	if err := c.Start(context.Background(), quiz.DefaultPosition()); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	snap := c.Snapshot()
	p := snap.Problem

	if len(p.Choices) != 2 {
		t.Fatalf("got %d choices, want 2", len(p.Choices))
	}
	var correctChoices int
	for _, ch := range p.Choices {
		if ch.Correct {
			correctChoices++
			if ch.Word != "ball" {
				t.Errorf("correct choice word = %q, want %q", ch.Word, "ball")
			}
			if ch.Label != "<em>ba</em>ll" {
				t.Errorf("correct choice label = %q, want %q", ch.Label, "<em>ba</em>ll")
			}
		}
	}
	if correctChoices != 1 {
		t.Errorf("%d correct choices, want exactly 1", correctChoices)
	}

	// The shadow game pages across the whole level.
	_, lastProblem := quiz.LastUnitAndProblem(testStore().QuizTable(context.Background()), 1)
	if p.PageTotal != lastProblem {
		t.Errorf("PageTotal = %d, want %d", p.PageTotal, lastProblem)
	}

	// Resolving a shadow answer matches on the word.
	c.BeginProblems()
	if c.Resolve("all") {
		t.Error("phonetic accepted as a shadow answer")
	}
	if !c.Resolve("ball") {
		t.Error("word rejected as a shadow answer")
	}
}

func TestBuilderProblemView(t *testing.T) {
	c := NewController(testConfig(Builder))
	defer c.Close()

	if err := c.Start(context.Background(), quiz.DefaultPosition()); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	p := c.Snapshot().Problem

	// Five slot options: the correct value plus four distractors.
	if len(p.Options) != 5 {
		t.Fatalf("got %d options, want 5", len(p.Options))
	}
	var correctOptions int
	for _, opt := range p.Options {
		if opt.Correct {
			correctOptions++
			if opt.Value != "all" {
				t.Errorf("correct option = %q, want %q", opt.Value, "all")
			}
		}
		if opt.AudioURL == "" {
			t.Errorf("option %q has no audio URL", opt.Value)
		}
	}
	if correctOptions < 1 {
		t.Error("no option marked correct")
	}

	if p.PageTotal != 2 {
		t.Errorf("PageTotal = %d, want the unit's row count 2", p.PageTotal)
	}
	if p.ImageURL != "https://cdn.example.com/play/img/ball.png" {
		t.Errorf("ImageURL = %q", p.ImageURL)
	}
	if p.SlotSpinURL != "https://cdn.example.com/play/slotmachine2.mp3" {
		t.Errorf("SlotSpinURL = %q", p.SlotSpinURL)
	}
}
