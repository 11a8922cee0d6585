package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/phanxgames/reveal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// maxScriptFrames stops a script that never finishes.
const maxScriptFrames = 1 << 20

var errFetchDisabled = errors.New("remote fetch disabled (use --fetch)")

func newSimulateCmd(v *viper.Viper) *cobra.Command {
	var scriptFile string
	cmd := &cobra.Command{
		Use:   "simulate <page.yaml>",
		Short: "Run a page headlessly and print every event",
		Long: `Simulate builds the page described by a YAML file, drives it at a fixed
frame rate, and prints one line per engine event. With --script the scroll
sequence is replayed frame by frame and the run lasts at least until the
script finishes. Media loads in flight after the last frame are given up to
--settle to land. The final state of every handle is printed at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], scriptFile)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&scriptFile, "script", "s", "", "scroll script to replay")
	f.Int("frames", 120, "minimum number of frames to run")
	f.Int("fps", 60, "simulated frame rate")
	f.Bool("fetch", false, "allow http(s) media to be fetched")
	f.Duration("settle", 5*time.Second, "how long to wait for in-flight media after the last frame")
	_ = v.BindPFlag("simulate.frames", f.Lookup("frames"))
	_ = v.BindPFlag("simulate.fps", f.Lookup("fps"))
	_ = v.BindPFlag("simulate.fetch", f.Lookup("fetch"))
	_ = v.BindPFlag("simulate.settle", f.Lookup("settle"))
	return cmd
}

// printSink writes one line per event, prefixed with the current frame.
type printSink struct {
	w     io.Writer
	frame *int
	count int
}

func (s *printSink) EmitEvent(e reveal.Event) {
	s.count++
	line := fmt.Sprintf("%6d  %-13s %s/%s", *s.frame, e.Type, e.Section, e.Region)
	switch e.Type {
	case reveal.EventCountTick:
		line += fmt.Sprintf("  tick=%d value=%g", e.Index, e.Value)
	case reveal.EventCycle:
		line += fmt.Sprintf("  index=%d", e.Index)
	case reveal.EventMediaLoaded:
		line += "  " + e.URL
	case reveal.EventMediaError:
		line += fmt.Sprintf("  %s: %v", e.URL, e.Err)
	}
	fmt.Fprintln(s.w, line)
}

func runSimulate(ctx context.Context, w io.Writer, cfg *config, pagePath, scriptPath string) error {
	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	spec, err := readPageSpec(pagePath)
	if err != nil {
		return err
	}

	frame := 0
	sink := &printSink{w: w, frame: &frame}
	loader := newMediaLoader(filepath.Dir(pagePath), cfg.Simulate)
	page, b, err := reveal.BuildPage(spec, loader, reveal.PageConfig{Logger: log, Sink: sink})
	if err != nil {
		return err
	}
	defer page.Dispose()

	var runner *reveal.ScriptRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err = reveal.LoadScrollScript(data)
		if err != nil {
			return err
		}
		page.SetScript(runner)
	}

	dt := time.Second / time.Duration(cfg.Simulate.FPS)
	for frame = 1; frame <= cfg.Simulate.Frames || (runner != nil && !runner.Done()); frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if frame > maxScriptFrames {
			return fmt.Errorf("script did not finish within %d frames", maxScriptFrames)
		}
		page.Frame(dt)
	}
	// Loads run on real time; keep framing until they land.
	deadline := time.Now().Add(cfg.Simulate.Settle)
	for pendingLoads(b) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		page.Frame(dt)
		frame++
	}

	log.Info("simulation finished",
		zap.Int("frames", page.Frames()),
		zap.Int("events", sink.count),
		zap.Float64("scrollY", page.Viewport().ScrollY))
	printSummary(w, page, b)
	return nil
}

func pendingLoads(b *reveal.Bindings) bool {
	for _, m := range b.Media {
		if m.Pending() {
			return true
		}
	}
	return false
}

func readPageSpec(path string) (*reveal.PageSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return reveal.LoadPageSpec(data)
}

// newMediaLoader resolves http(s) URLs with an HTTPLoader when fetching is
// enabled and everything else as a file path relative to dir.
func newMediaLoader(dir string, cfg simulateConfig) reveal.Loader {
	var remote *reveal.HTTPLoader
	if cfg.Fetch {
		remote = reveal.NewHTTPLoader(reveal.HTTPLoaderConfig{MaxConcurrent: cfg.MaxConcurrent})
	}
	return reveal.LoaderFunc(func(ctx context.Context, raw string) (reveal.Media, error) {
		u, err := url.Parse(raw)
		if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			if remote == nil {
				return reveal.Media{}, errFetchDisabled
			}
			return remote.Load(ctx, raw)
		}
		path := raw
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return reveal.Media{}, err
		}
		return reveal.Media{URL: raw, Data: data}, nil
	})
}

func printSummary(w io.Writer, page *reveal.Page, b *reveal.Bindings) {
	v := page.Viewport()
	fmt.Fprintf(w, "\nframes=%d scrollY=%g viewport=%gx%g\n", page.Frames(), v.ScrollY, v.Width, v.Height)

	for _, name := range slices.Sorted(maps.Keys(b.Watchers)) {
		fmt.Fprintf(w, "watcher   %-24s entered=%t\n", name, b.Watchers[name].Entered())
	}
	for _, name := range slices.Sorted(maps.Keys(b.Timelines)) {
		pr, err := b.Timelines[name].Sample(v.ScrollY)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "timeline  %-24s progress=%.3f%s\n", name, pr.Raw, propertyValues(pr))
	}
	for _, name := range slices.Sorted(maps.Keys(b.Staggers)) {
		for i, t := range b.Staggers[name] {
			pr, err := t.Sample(v.ScrollY)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "stagger   %-24s progress=%.3f\n", fmt.Sprintf("%s[%d]", name, i), pr.Raw)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Parallax)) {
		off, err := b.Parallax[name].Offset(v.ScrollY)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "parallax  %-24s offset=%.1f\n", name, off)
	}
	for _, name := range slices.Sorted(maps.Keys(b.CountUps)) {
		c := b.CountUps[name]
		fmt.Fprintf(w, "countup   %-24s value=%g done=%t\n", name, c.Value(), c.Done())
	}
	for _, name := range slices.Sorted(maps.Keys(b.Cyclers)) {
		c := b.Cyclers[name]
		fmt.Fprintf(w, "cycler    %-24s index=%d started=%t\n", name, c.ActiveIndex(), c.Started())
	}
	for _, name := range slices.Sorted(maps.Keys(b.Media)) {
		st := b.Media[name].State()
		fmt.Fprintf(w, "media     %-24s requested=%t loaded=%t failed=%t\n", name, st.Requested, st.Loaded, st.Failed)
	}
	for _, name := range slices.Sorted(maps.Keys(b.Entrances)) {
		done := 0
		for _, e := range b.Entrances[name] {
			if e.Done {
				done++
			}
		}
		fmt.Fprintf(w, "entrance  %-24s done=%d/%d\n", name, done, len(b.Entrances[name]))
	}
}

func propertyValues(pr reveal.Progress) string {
	s := ""
	for i := 0; i < pr.Len(); i++ {
		name, _ := pr.At(i)
		s += fmt.Sprintf(" %s=%.3f", name, pr.Value(name))
	}
	return s
}
