package ultraspin

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Secs   float64 `json:"seconds,omitempty"`
}

// script is the top-level JSON structure of a playback script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Script actions.
const (
	actionScreenshot = "screenshot"
	actionWait       = "wait"
	actionIdle       = "idle"
)

// ScriptRunner sequences waits and screenshots across frames so transition
// playback can be captured unattended. Attach it with Scene.SetScript.
//
// Steps:
//
//	{"action": "wait", "frames": 30}        wait a number of frames
//	{"action": "wait", "seconds": 1.5}      wait for scene time to pass
//	{"action": "idle"}                      wait until every transition has finished
//	{"action": "screenshot", "label": "x"}  capture the next drawn frame
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitTime  time.Duration
	idle      bool
	done      bool
}

// LoadScript parses a JSON playback script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case actionScreenshot, actionWait, actionIdle:
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a script to the scene. It is stepped at the start of
// every update.
func (s *Scene) SetScript(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame of dt seconds. Called from
// Scene.UpdateDelta.
func (r *ScriptRunner) step(s *Scene, dt float32) {
	if r.done {
		return
	}
	if r.idle {
		if len(s.playbacks) > 0 || len(s.nextFrame) > 0 {
			return
		}
		r.idle = false
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.waitTime > 0 {
		r.waitTime -= seconds(dt)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		if st.Secs > 0 {
			r.waitTime = time.Duration(st.Secs * float64(time.Second))
		}
	case actionIdle:
		r.idle = true
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.waitTime <= 0 && !r.idle {
		r.done = true
	}
}
