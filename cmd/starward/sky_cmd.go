package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/state"
	"github.com/litescript/starward/internal/ui"
)

const (
	minRefresh = 1 * time.Second
	maxRefresh = 5 * time.Minute
)

func newSkyCmd(a *app) *cobra.Command {
	loc := &location{}
	var (
		refresh time.Duration
		summary bool
		watch   time.Duration
		events  bool
	)
	cmd := &cobra.Command{
		Use:   "sky",
		Short: "Live sky dashboard",
		Long: `Track the Sun, Moon and planets from the observer in a terminal UI.

With --summary the sky is printed once as a table; add --watch to repeat.

Keys: 1-4 or tab switch views, arrows move, enter opens a body, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, err := a.observer(cmd, loc)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("refresh") {
				refresh = a.cfg.Sky.Refresh
			}
			refresh = min(max(refresh, minRefresh), maxRefresh)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			stateCfg := state.DefaultConfig()
			stateCfg.RefreshInterval = refresh
			mgr := state.NewManager(stateCfg)
			sampler := state.NewSampler(ephem.SolarSystem(), ephem.NewPathCache(ephem.PathCacheTTL))

			if summary || watch > 0 || events {
				return a.runSkyHeadless(ctx, sampler, mgr, obs, watch, events)
			}

			p := tea.NewProgram(ui.New(mgr), tea.WithAltScreen(), tea.WithContext(ctx))
			go a.runComputeLoop(ctx, sampler, mgr, obs, p)

			if _, err := p.Run(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("run sky view: %w", err)
			}
			return nil
		},
	}
	addLocationFlags(cmd, loc)
	cmd.Flags().DurationVar(&refresh, "refresh", time.Second, "recompute interval (e.g. 1s, 30s)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a table instead of the dashboard")
	cmd.Flags().DurationVar(&watch, "watch", 0, "repeat the summary at this interval")
	cmd.Flags().BoolVar(&events, "events", false, "print recent rise, set and twilight events")
	return cmd
}

// runComputeLoop observes the sky on every tick and feeds the program.
func (a *app) runComputeLoop(ctx context.Context, sampler *state.Sampler, mgr *state.Manager, obs astro.Observer, p *tea.Program) {
	a.compute(sampler, mgr, obs, p)

	ticker := time.NewTicker(mgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Debug("compute loop shutting down")
			return
		case <-ticker.C:
			a.compute(sampler, mgr, obs, p)
		}
	}
}

func (a *app) compute(sampler *state.Sampler, mgr *state.Manager, obs astro.Observer, p *tea.Program) {
	start := time.Now()
	sky, err := sampler.Observe(obs, start)
	dur := time.Since(start)
	if err != nil {
		a.log.Error("observe sky: %v", err)
		mgr.Update(nil, dur, err)
		p.Send(ui.ErrorMsg{Error: err})
		return
	}
	a.log.Debug("observed %d bodies in %v", len(sky.Bodies), dur)
	mgr.Update(sky, dur, nil)
	p.Send(ui.DataUpdateMsg{Snapshot: mgr.Snapshot()})
}

// runSkyHeadless prints the sky once, or every watch interval until ctx
// is cancelled. --date fixes the instant of a single summary.
func (a *app) runSkyHeadless(ctx context.Context, sampler *state.Sampler, mgr *state.Manager, obs astro.Observer, watch time.Duration, events bool) error {
	once := func(t time.Time) error {
		start := time.Now()
		sky, err := sampler.Observe(obs, t)
		mgr.Update(sky, time.Since(start), err)
		if err != nil {
			return err
		}
		if err := a.render.Table(a.skyTable(sky), nil); err != nil {
			return err
		}
		if events {
			return a.render.Table(eventTable(mgr.RecentEvents(10)), nil)
		}
		return nil
	}

	if watch == 0 {
		jd, err := a.when()
		if err != nil {
			return err
		}
		return once(jd.Time())
	}

	if err := once(time.Now()); err != nil {
		a.log.Error("%v", err)
	}
	ticker := time.NewTicker(watch)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if a.render.Format() == output.FormatPlain {
				fmt.Fprintln(a.out)
			}
			if err := once(t); err != nil {
				a.log.Error("%v", err)
			}
		}
	}
}

func (a *app) skyTable(sky *state.Sky) *output.Table {
	night := "day"
	if sky.Night {
		night = "night"
	}
	t := &output.Table{
		Title: fmt.Sprintf("%s  %s  Sun %+.1f° (%s)  Moon %s %.0f%%",
			sky.Observer.Name, sky.Time.UTC().Format("2006-01-02 15:04:05 UTC"),
			sky.SunAltitude.Degrees(), night, sky.Moon.Phase, sky.Moon.PercentIlluminated),
		Columns: []string{"Body", "Alt", "Az", "Mag", "Rise", "Set", "Next 24 h"},
	}
	for _, b := range sky.Bodies {
		mag := ""
		if b.HasMagnitude {
			mag = fmt.Sprintf("%+.1f", b.Magnitude)
		}
		t.Rows = append(t.Rows, []string{
			b.Name,
			fmt.Sprintf("%+.1f°", b.Altitude.Degrees()),
			fmt.Sprintf("%.1f°", b.Azimuth.Degrees()),
			mag,
			clock(b.Events.Rise, sky.Observer),
			clock(b.Events.Set, sky.Observer),
			output.Sparkline(b.Track, 24, a.render.Color()),
		})
		rec := map[string]any{
			"body":     b.Name,
			"kind":     b.Kind.String(),
			"ra":       b.Coord.RA.Degrees(),
			"dec":      b.Coord.Dec.Degrees(),
			"altitude": b.Altitude.Degrees(),
			"azimuth":  b.Azimuth.Degrees(),
			"rise":     eventJSON(b.Events.Rise),
			"set":      eventJSON(b.Events.Set),
			"transit":  eventJSON(b.Events.Transit),
		}
		if b.HasMagnitude {
			rec["magnitude"] = b.Magnitude
		}
		if b.HasPhase {
			rec["illumination"] = b.Illumination
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

func eventTable(events []state.Event) *output.Table {
	t := &output.Table{
		Title:   "Events",
		Columns: []string{"Time", "Event", "Body"},
	}
	for _, e := range events {
		t.Rows = append(t.Rows, []string{e.Timestamp.UTC().Format("15:04:05"), string(e.Type), e.Body})
		t.Records = append(t.Records, map[string]any{
			"timestamp": e.Timestamp.UTC().Format(time.RFC3339),
			"type":      string(e.Type),
			"body":      e.Body,
		})
	}
	return t
}

// clock formats an event as local HH:MM for the observer, or "—".
func clock(e astro.Event, obs astro.Observer) string {
	if !e.OK {
		return "—"
	}
	tz, err := obs.Location()
	if err != nil {
		tz = time.UTC
	}
	return e.Time().In(tz).Format("15:04")
}

func eventJSON(e astro.Event) any {
	if !e.OK {
		return nil
	}
	return e.Time().Format(time.RFC3339)
}
