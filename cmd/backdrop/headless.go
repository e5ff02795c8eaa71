package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/backdrop/internal/automation"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/export"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/link"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/scheduler"
	"github.com/san-kum/backdrop/internal/storage"
	"github.com/spf13/cobra"
)

// headless mounts a scene on a manual host and feeds it an autopilot
// pointer.
type headless struct {
	host   *scheduler.ManualHost
	scene  *scene.Scene
	wander *pointer.Wander
	bg, fg *render.Raster
}

func newHeadless(cfg *config.Config, vp geom.Viewport, logger *slog.Logger) (*headless, error) {
	h := &headless{
		host:   scheduler.NewManualHost(vp),
		wander: pointer.NewWander(cfg.Seed, vp),
		bg:     render.NewRaster(vp),
		fg:     render.NewRaster(vp),
	}
	h.host.Interval = time.Second / time.Duration(cfg.FPS)
	h.scene = scene.New(h.host, h.bg, h.fg, sceneOptions(cfg, logger))
	h.scene.Mount()
	if !h.scene.Running() {
		return nil, fmt.Errorf("cannot mount on a %dx%d viewport", vp.W, vp.H)
	}
	return h, nil
}

func (h *headless) step() {
	p := h.wander.Next()
	h.host.Move(p.X, p.Y)
	h.host.Tick(1)
}

func (h *headless) close() { h.scene.Unmount() }

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pickSeed(cfg)
	logger, closeLog, err := headlessLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	h, err := newHeadless(cfg, geom.Viewport{W: width, H: height}, logger)
	if err != nil {
		return err
	}
	defer h.close()

	every := max(gifStep, 1)
	rec := export.NewRecorder(max(100*every/cfg.FPS, 1))
	rec.MaxFrames = 0
	capture := func(i int) {
		if i%every == 0 {
			img, _ := h.scene.Composite()
			rec.Add(img)
		}
	}

	start := time.Now()
	if scriptFile != "" {
		sc, err := automation.LoadScenario(scriptFile)
		if err != nil {
			return err
		}
		runner := &automation.Runner{
			Host:    h.host,
			Wander:  h.wander,
			SetDark: h.scene.SetDark,
			OnFrame: capture,
			Log:     logger,
		}
		if err := runner.Run(cmd.Context(), sc); err != nil {
			return err
		}
		frames = sc.Frames()
	} else {
		for i := 0; i < frames; i++ {
			h.step()
			capture(i)
		}
	}
	logger.Info("rendered", "frames", frames, "elapsed", time.Since(start).Round(time.Millisecond), "seed", cfg.Seed)

	if err := rec.Save(outBase + ".gif"); err != nil {
		return err
	}
	final, _ := h.scene.Composite()
	if err := export.WritePNG(outBase+".png", final); err != nil {
		return err
	}

	// the vector copy redraws the final state; nothing is stepped
	vp := h.host.Viewport()
	pal := render.PaletteFor(h.scene.Dark())
	bgSVG, fgSVG := export.NewSVG(vp), export.NewSVG(vp)
	render.DrawField(bgSVG, h.scene.Background.Field(), cfg.Link.Radius, pal)
	render.DrawTrail(fgSVG, h.scene.Cursor.Emitter().Points(), pal)
	if err := export.WriteSVG(outBase+".svg", export.Stack(pal.Background, bgSVG, fgSVG)); err != nil {
		return err
	}

	fmt.Printf("wrote %s.gif (%d frames), %s.png, %s.svg\n", outBase, rec.Len(), outBase, outBase)
	return nil
}

var benchViewports = []geom.Viewport{
	{W: 800, H: 600},
	{W: 1280, H: 720},
	{W: 1500, H: 900},
	{W: 1920, H: 1080},
	{W: 2560, H: 1440},
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pickSeed(cfg)
	logger, closeLog, err := headlessLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	fmt.Printf("benchmarking %d frames per viewport\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tPARTICLES\tLINKS\tTIME\tFRAME\tFPS")

	for _, vp := range benchViewports {
		h, err := newHeadless(cfg, vp, logger)
		if err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			h.step()
		}
		elapsed := time.Since(start)
		ps := h.scene.Background.Field().Particles
		perFrame := elapsed / time.Duration(max(benchFrames, 1))

		fmt.Fprintf(w, "%dx%d\t%s\t%s\t%v\t%v\t%.0f\n",
			vp.W, vp.H,
			humanize.Comma(int64(len(ps))),
			humanize.Comma(int64(link.Count(ps, cfg.Link.Radius))),
			elapsed.Round(time.Millisecond),
			perFrame.Round(time.Microsecond),
			float64(benchFrames)/elapsed.Seconds())
		h.close()
	}

	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pickSeed(cfg)
	logger, closeLog, err := headlessLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	vp := geom.Viewport{W: width, H: height}
	h, err := newHeadless(cfg, vp, logger)
	if err != nil {
		return err
	}
	defer h.close()

	sampler := metrics.NewSampler(cfg.Link.Radius, max(frames, 1))
	tracked := []metrics.Metric{
		metrics.NewEnergy(),
		metrics.NewLinks(cfg.Link.Radius),
		&metrics.TrailLength{},
		metrics.NewContainment(),
	}
	for i := 0; i < frames; i++ {
		h.step()
		f := metrics.Frame{Field: h.scene.Background.Field(), Trail: h.scene.Cursor.Emitter()}
		sampler.Observe(f)
		for _, m := range tracked {
			m.Observe(f)
		}
	}

	if sampler.Energy.Len() > 1 {
		fmt.Println(asciigraph.Plot(sampler.Energy.Values(),
			asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("kinetic energy")))
		fmt.Println()
		fmt.Println(asciigraph.Plot(sampler.Links.Values(),
			asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("links")))
		fmt.Println()
	}

	ps := h.scene.Background.Field().Particles
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "viewport\t%dx%d px\n", vp.W, vp.H)
	fmt.Fprintf(w, "seed\t%d\n", cfg.Seed)
	fmt.Fprintf(w, "frames\t%s\n", humanize.Comma(int64(frames)))
	fmt.Fprintf(w, "particles\t%s\n", humanize.Comma(int64(len(ps))))
	fmt.Fprintf(w, "links (peak)\t%s\n", humanize.Comma(int64(sampler.Links.Max())))
	fmt.Fprintf(w, "mean displacement\t%.2f px\n", metrics.MeanDisplacement(ps))
	period := metrics.DominantPeriod(sampler.Energy.Values())
	if period > 0 {
		fmt.Fprintf(w, "energy period\t%.1f frames\n", period)
	}
	for _, m := range tracked {
		fmt.Fprintf(w, "%s (mean)\t%.4f\n", m.Name(), m.Value())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveDir != "" {
		table := storage.Table{Columns: []string{"frame", "energy", "links", "trail"}}
		for i, e := range sampler.Energy.Values() {
			table.Rows = append(table.Rows, []float64{float64(i), e, sampler.Links.Values()[i], sampler.Trail.Values()[i]})
		}
		summary := map[string]float64{
			"particles":     float64(h.scene.Background.Field().Len()),
			"energy_period": period,
		}
		for _, m := range tracked {
			summary[m.Name()] = m.Value()
		}
		if err := saveRun(cfg, "stats", vp, summary, table); err != nil {
			return err
		}
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pickSeed(cfg)

	sw := automation.Sweep{
		Param:    args[0],
		Min:      sweepMin,
		Max:      sweepMax,
		Steps:    sweepSteps,
		Frames:   frames,
		Viewport: geom.Viewport{W: width, H: height},
	}
	results, err := automation.RunSweep(cmd.Context(), cfg, sw)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over %d frames at %dx%d (seed %d)\n\n", sw.Param, sw.Frames, width, height, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tPARTICLES\tLINKS\tENERGY\tCONTAINED\tTRAIL")
	linkSeries := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%s\t%.1f\t%.4f\t%.2f%%\t%.1f\n",
			r.Value, humanize.Comma(int64(r.Particles)), r.Links, r.Energy, r.Containment*100, r.Trail)
		linkSeries = append(linkSeries, r.Links)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(linkSeries) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(linkSeries, asciigraph.Height(8), asciigraph.Caption("mean links per step")))
	}

	if saveDir != "" {
		table := storage.Table{Columns: []string{sw.Param, "particles", "links", "energy", "containment", "trail"}}
		for _, r := range results {
			table.Rows = append(table.Rows, []float64{r.Value, float64(r.Particles), r.Links, r.Energy, r.Containment, r.Trail})
		}
		summary := map[string]float64{"min": sw.Min, "max": sw.Max, "steps": float64(sw.Steps)}
		if err := saveRun(cfg, "sweep", sw.Viewport, summary, table); err != nil {
			return err
		}
	}
	return nil
}

// saveRun stores a finished headless run under --save.
func saveRun(cfg *config.Config, kind string, vp geom.Viewport, summary map[string]float64, table storage.Table) error {
	st := storage.New(saveDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Kind:    kind,
		Preset:  preset,
		Seed:    cfg.Seed,
		Width:   vp.W,
		Height:  vp.H,
		Frames:  frames,
		Params:  runParams(cfg),
		Summary: summary,
	}, table)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s in %s\n", id, st.Dir())
	return nil
}

func runParams(cfg *config.Config) map[string]float64 {
	return map[string]float64{
		"density":            cfg.Field.Density,
		"interaction_radius": cfg.Field.InteractionRadius,
		"attraction":         cfg.Field.Attraction,
		"spring":             cfg.Field.Spring,
		"damping":            cfg.Field.Damping,
		"spawn_speed":        cfg.Field.SpawnSpeed,
		"link_radius":        cfg.Link.Radius,
		"trail_decay":        cfg.Trail.Decay,
	}
}

func runRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	if len(args) == 1 {
		return showRun(st, args[0])
	}

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", st.Dir())
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tWHEN\tPRESET\tSEED\tVIEWPORT\tFRAMES")
	for _, r := range runs {
		p := r.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dx%d\t%s\n",
			r.ID, r.Kind, humanize.Time(r.Timestamp), p, r.Seed, r.Width, r.Height, humanize.Comma(int64(r.Frames)))
	}
	return w.Flush()
}

func showRun(st *storage.Store, id string) error {
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s at %dx%d, seed %d, %s frames\n\n",
		meta.ID, meta.Kind, meta.Width, meta.Height, meta.Seed, humanize.Comma(int64(meta.Frames)))
	for _, col := range table.Columns[min(1, len(table.Columns)):] {
		values := table.Column(col)
		if len(values) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(values, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption(col)))
		fmt.Println()
	}

	keys := make([]string, 0, len(meta.Summary))
	for k := range meta.Summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%.4f\n", k, meta.Summary[k])
	}
	return w.Flush()
}
