package tileswap

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a play script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	From   int     `json:"from,omitempty"`
	To     int     `json:"to,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a play script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, level control and screenshots across
// frames for automated visual testing. Attach to a Game via SetTestRunner.
//
// Actions:
//
//	screenshot  capture the next frame under label
//	click       press and release at (x, y)
//	drag        drag from (fromX, fromY) to (toX, toY) over frames
//	swap        drag board position from onto position to
//	solve       swap tiles into place, one swap per step, until solved
//	next        press the next-level control
//	wait        idle for frames
//	waitLoad    idle until the current level finishes loading
//	quit        end the game loop
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	solving   bool
	done      bool
}

// validActions lists the actions LoadTestScript accepts.
var validActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "swap": true,
	"solve": true, "next": true, "wait": true, "waitLoad": true, "quit": true,
}

// LoadTestScript parses a JSON play script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !validActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the game. The runner's step method
// is called from Game.Update before input is polled each frame.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections and drags to drain before advancing.
	if g.injected.pending() > 0 || g.drag.Active() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.solving {
		r.solveStep(g)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	if st.Action == "waitLoad" && g.state == StateLoading {
		return
	}
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "swap":
		g.InjectSwap(st.From, st.To, max(st.Frames, 2))
	case "solve":
		r.solving = true
	case "next":
		g.Advance()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		g.Quit()
	}

	if r.cursor >= len(r.steps) && !r.solving && r.waitCount == 0 && g.injected.pending() == 0 {
		r.done = true
	}
}

// solveStep queues one drag that puts the first misplaced tile into place.
func (r *TestRunner) solveStep(g *Game) {
	c := g.collection
	if c == nil || g.gameOver {
		r.solving = false
		r.done = r.cursor >= len(r.steps)
		return
	}
	for i, t := range c.Tiles() {
		if t.Slot != i {
			g.InjectSwap(t.Slot, i, 4)
			return
		}
	}
	r.solving = false
}
