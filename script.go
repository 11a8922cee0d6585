package reveal

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a scroll script.
type scriptStep struct {
	Action  string  `yaml:"action" json:"action"`
	Y       float64 `yaml:"y,omitempty" json:"y,omitempty"`
	DY      float64 `yaml:"dy,omitempty" json:"dy,omitempty"`
	From    float64 `yaml:"from,omitempty" json:"from,omitempty"`
	To      float64 `yaml:"to,omitempty" json:"to,omitempty"`
	Width   float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Seconds float32 `yaml:"seconds,omitempty" json:"seconds,omitempty"`
	Easing  string  `yaml:"easing,omitempty" json:"easing,omitempty"`
	Frames  int     `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// scrollScript is the top-level structure of a script document.
type scrollScript struct {
	Steps []scriptStep `yaml:"steps" json:"steps"`
}

// ScriptRunner sequences scrolls, resizes and waits across frames, for
// reproducible animation runs in tests and the CLI. Attach to a Page via
// SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"scroll":   true,
	"scrollBy": true,
	"sweep":    true,
	"smooth":   true,
	"resize":   true,
	"wait":     true,
}

// LoadScrollScript parses a YAML or JSON script and returns a runner ready to
// be attached to a Page.
func LoadScrollScript(data []byte) (*ScriptRunner, error) {
	var script scrollScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse scroll script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "smooth" {
			if _, err := tweenFuncByName(st.Easing); err != nil {
				return nil, fmt.Errorf("parse scroll script: step %d: %w", i, err)
			}
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a runner to the page. Its step method is called at the
// start of every Frame.
func (p *Page) SetScript(runner *ScriptRunner) {
	p.runner = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Page.Frame.
func (r *ScriptRunner) step(p *Page) {
	if r.done {
		return
	}
	// Wait for queued injections and smooth scrolls to drain before advancing.
	if len(p.injectQueue) > 0 || p.Scrolling() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		p.InjectScroll(st.Y)
	case "scrollBy":
		p.InjectScrollBy(st.DY)
	case "sweep":
		p.InjectSweep(st.From, st.To, st.Frames)
	case "smooth":
		fn, _ := tweenFuncByName(st.Easing)
		p.ScrollTo(st.Y, st.Seconds, fn)
	case "resize":
		p.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 && !p.Scrolling() {
		r.done = true
	}
}
