// Package reveal is a viewport-synchronized reveal and animation engine for
// long scrolling pages such as course catalogs and landing pages.
//
// The engine consumes three things from its host: a scroll position, region
// geometry, and declarative animation descriptors. It produces progress
// values and visibility states. It never draws; hosts turn its outputs into
// opacity, transforms, displayed numbers and active slide indices.
//
// # Quick start
//
// A [Page] owns the scroll signal and one [Section] per page section. Feed it
// host input and call [Page.Frame] once per tick:
//
//	page := reveal.NewPage(reveal.PageConfig{
//		Viewport:       reveal.Viewport{Width: 1280, Height: 800},
//		DocumentHeight: 5200,
//	})
//	stats := page.NewSection("stats")
//	region := reveal.NewRegionAt("stats", 1600, 400)
//	gate, _ := stats.WatchVisibility(region, 0.3)
//	stats.CountUp(gate, 1500, 2*time.Second, 60, func(k int, v float64) {
//		label = fmt.Sprint(v)
//	})
//
//	// per scroll event:
//	page.OnScroll(y)
//	// per tick:
//	page.Frame(dt)
//
// For a windowed host, [Run] drives a page from an Ebitengine game loop with
// wheel and keyboard scrolling.
//
// # Primitives
//
// Visibility and progress are separate primitives:
//
//   - [Watcher] is monotonic: it enters once and never leaves.
//   - [ScrollTimeline] in [ModeScrub] is a pure function of scroll position
//     and reverses when the user scrolls back.
//   - [ScrollTimeline] in [ModeLatch] only advances.
//
// Built on those are [NewStagger] for sibling sequencing, [Parallax] for
// depth layers, [CountUp] for animated statistics, [AutoCycler] for
// carousels, [LazyMedia] for deferred loads and [Entrance] for one-shot
// tweened reveals (via [gween]).
//
// # Lifecycle
//
// Everything created through a Section is released by [Section.Dispose].
// After Dispose returns no callback fires. Using a disposed handle returns
// [ErrDisposed]; with [SetDebugMode] it panics instead.
//
// # Declarative pages
//
// [LoadPageSpec] and [BuildPage] build a page from YAML, and
// [LoadScrollScript] replays scroll sequences frame by frame. The revealctl
// command uses both to simulate a page without a window. Events can be
// forwarded to a [Donburi] world with the reveal/ecs adapter.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package reveal
