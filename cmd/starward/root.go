package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/config"
	"github.com/litescript/starward/internal/logging"
	"github.com/litescript/starward/internal/observer"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/verbose"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	out    io.Writer
	errOut io.Writer

	// global flags
	verbose    bool
	format     string
	precision  string
	configPath string
	logLevel   string
	date       string

	cfg    *config.Config
	log    *logging.Logger
	render *output.Renderer
}

// flagKeys maps global flags to the config keys they override.
var flagKeys = map[string]string{
	"output":    "output.format",
	"precision": "output.precision",
	"log-level": "log.level",
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "starward",
		Short: "Positional astronomy from the terminal",
		Long: `starward computes where the Sun, Moon, planets and fixed targets are,
when they rise, transit and set, and how the Moon is lit.

Every calculation can show its working with --verbose.

Examples:
  starward sun rise --lat 51.48 --lon 0
  starward planets all --output json
  starward coords convert "17h45m40s -29d00m28s" --to galactic
  starward observer add home --lat 40.0 --lon -105.3 --tz America/Denver
  starward sky`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "show calculation steps")
	pf.StringVarP(&a.format, "output", "o", "plain", "output format (plain, json)")
	pf.StringVarP(&a.precision, "precision", "p", "display", "display precision ("+strings.Join(output.Levels(), ", ")+")")
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.starward/config.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&a.date, "date", "", "instant to compute for: RFC 3339, YYYY-MM-DD[ HH:MM[:SS]], JD or now")

	root.AddCommand(
		newTimeCmd(a),
		newAngleCmd(a),
		newCoordsCmd(a),
		newSunCmd(a),
		newMoonCmd(a),
		newPlanetsCmd(a),
		newVisCmd(a),
		newObserverCmd(a),
		newConstantsCmd(a),
		newSkyCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads config with explicitly set flags on top, then builds the
// logger and renderer.
func (a *app) setup(cmd *cobra.Command) error {
	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(a.configPath, config.WithOverrides(overrides))
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.New(logging.ParseLevel(cfg.Log.Level))
	a.log.SetOutput(a.errOut)
	a.log.SetJSON(cfg.Log.Format == "json")
	a.log.Debug("config loaded: output=%s precision=%s observer.default=%q",
		cfg.Output.Format, cfg.Output.Precision, cfg.Observer.Default)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	prec, err := output.ParsePrecision(cfg.Output.Precision)
	if err != nil {
		return err
	}
	a.render = output.New(a.out, format, prec, a.useColor())
	return nil
}

// useColor resolves output.color; auto colours only a terminal.
func (a *app) useColor() bool {
	switch a.cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := a.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// trace returns a recorder when --verbose is set, otherwise nil.
func (a *app) trace() *verbose.Trace {
	if a.verbose {
		return verbose.New()
	}
	return nil
}

// when resolves --date to a Julian Date.
func (a *app) when() (astro.JulianDate, error) {
	return parseWhen(a.date, time.Now())
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen reads an instant as RFC 3339, a UTC calendar date or a bare
// Julian Date. Empty text and "now" select now.
func parseWhen(text string, now time.Time) (astro.JulianDate, error) {
	s := strings.TrimSpace(text)
	if s == "" || strings.EqualFold(s, "now") {
		return astro.FromTime(now), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return astro.FromTime(t), nil
		}
	}
	if jd, err := parseFloat(strings.TrimPrefix(strings.ToUpper(s), "JD")); err == nil {
		return astro.NewJulianDate(jd), nil
	}
	return astro.JulianDate{}, fmt.Errorf("date %q: %w", text, astro.ErrParse)
}

// location holds the per-command observer flags.
type location struct {
	lat, lon  float64
	elevation float64
	timezone  string
	name      string
}

func addLocationFlags(cmd *cobra.Command, loc *location) {
	f := cmd.PersistentFlags()
	f.Float64Var(&loc.lat, "lat", 0, "observer latitude in degrees, north positive")
	f.Float64Var(&loc.lon, "lon", 0, "observer longitude in degrees, east positive")
	f.Float64Var(&loc.elevation, "elevation", 0, "observer elevation in meters")
	f.StringVar(&loc.timezone, "tz", "", "IANA time zone for local times")
	f.StringVar(&loc.name, "observer", "", "saved observer name (default: the registry default)")
}

// errNoObserver reports that no site was given and none is saved.
var errNoObserver = errors.New("no observer: pass --lat and --lon, --observer, or save one with 'starward observer add'")

// observer resolves --lat/--lon, then --observer, then the configured
// default, then the registry default.
func (a *app) observer(cmd *cobra.Command, loc *location) (astro.Observer, error) {
	flags := cmd.Flags()
	if flags.Changed("lat") || flags.Changed("lon") {
		if !flags.Changed("lat") || !flags.Changed("lon") {
			return astro.Observer{}, fmt.Errorf("--lat and --lon must be given together: %w", astro.ErrInvalidArgument)
		}
		return astro.NewObserver("custom", loc.lat, loc.lon, loc.elevation, loc.timezone)
	}

	reg, err := a.registry()
	if err != nil {
		return astro.Observer{}, err
	}
	name := loc.name
	if name == "" {
		name = a.cfg.Observer.Default
	}
	obs, err := reg.Resolve(name)
	if errors.Is(err, observer.ErrNoDefault) {
		return astro.Observer{}, errNoObserver
	}
	if err != nil {
		return astro.Observer{}, err
	}
	a.log.Debug("observer %s", obs)
	return obs, nil
}

// optionalObserver is observer for commands that still work without a site.
func (a *app) optionalObserver(cmd *cobra.Command, loc *location) (astro.Observer, bool, error) {
	obs, err := a.observer(cmd, loc)
	if errors.Is(err, errNoObserver) {
		a.log.Debug("no observer, skipping horizontal coordinates")
		return astro.Observer{}, false, nil
	}
	if err != nil {
		return astro.Observer{}, false, err
	}
	return obs, true, nil
}

// registry loads the observer registry named by config.
func (a *app) registry() (*observer.Registry, error) {
	path := a.cfg.Observer.File
	if path == "" {
		p, err := observer.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	reg := observer.New(path)
	if err := reg.Load(); err != nil {
		return nil, err
	}
	a.log.Debug("loaded %d observers from %s", reg.Len(), path)
	return reg, nil
}
