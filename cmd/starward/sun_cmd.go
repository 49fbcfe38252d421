package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/verbose"
)

func newSunCmd(a *app) *cobra.Command {
	loc := &location{}
	cmd := &cobra.Command{
		Use:   "sun",
		Short: "Solar position, rise, set, noon and twilight",
	}
	addLocationFlags(cmd, loc)

	position := &cobra.Command{
		Use:   "position",
		Short: "Apparent solar position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jd, err := a.when()
			if err != nil {
				return err
			}
			tr := a.trace()
			sun := astro.SunAt(jd, tr)

			res := output.NewResult("Sun")
			res.Add("jd", "JD", jd.JD(), a.prec().JD(jd))
			a.addRA(res, "ra", "RA", sun.RA)
			a.addDec(res, "dec", "Dec", sun.Dec)
			a.addDegrees(res, "longitude", "Ecliptic longitude", sun.Longitude)
			a.addFloat(res, "distance_au", "Distance", sun.DistanceAU, "AU")
			a.addFloat(res, "equation_of_time", "Equation of time", sun.EquationOfTime, "min")

			obs, ok, err := a.optionalObserver(cmd, loc)
			if err != nil {
				return err
			}
			if ok {
				a.addHorizontal(res, sun.ICRS().ToHorizontal(obs, jd, tr))
				addObserver(res, obs)
			}
			return a.render.Result(res, tr)
		},
	}

	rise := a.eventCmd(loc, "rise", "Next sunrise (upper limb, with refraction)", "Sunrise", astro.Sunrise)
	set := a.eventCmd(loc, "set", "Next sunset", "Sunset", astro.Sunset)
	noon := a.eventCmd(loc, "noon", "Solar noon, the Sun's meridian transit", "Solar noon", astro.SolarNoon)

	var kind string
	twilight := &cobra.Command{
		Use:   "twilight",
		Short: "Morning and evening twilight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := astro.ParseTwilightKind(kind)
			if err != nil {
				return err
			}
			obs, jd, err := a.siteAndDate(cmd, loc)
			if err != nil {
				return err
			}
			tr := a.trace()
			dawn, dusk, err := astro.Twilight(obs, jd, k, tr)
			if err != nil {
				return err
			}
			res := output.NewResult("Twilight (" + k.String() + ")")
			res.Add("kind", "Kind", k.String(), "")
			res.Add("horizon", "Sun altitude", k.Horizon().Degrees(), a.prec().SignedDegrees(k.Horizon()))
			a.addEvent(res, "dawn", "Dawn", dawn, obs)
			a.addEvent(res, "dusk", "Dusk", dusk, obs)
			addObserver(res, obs)
			return a.render.Result(res, tr)
		},
	}
	twilight.Flags().StringVar(&kind, "kind", "civil", "civil, nautical or astronomical")

	daylength := &cobra.Command{
		Use:   "daylength",
		Short: "Hours between sunrise and sunset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, jd, err := a.siteAndDate(cmd, loc)
			if err != nil {
				return err
			}
			tr := a.trace()
			hours, err := astro.DayLength(obs, jd, tr)
			if err != nil {
				return err
			}
			res := output.NewResult("Day length")
			res.Add("hours", "Day length", hours, output.FormatHours(hours))
			res.Add("night_hours", "Night length", 24-hours, output.FormatHours(24-hours))
			addObserver(res, obs)
			return a.render.Result(res, tr)
		},
	}

	cmd.AddCommand(position, rise, set, noon, twilight, daylength)
	return cmd
}

type eventFunc func(astro.Observer, astro.JulianDate, *verbose.Trace) (astro.Event, error)

// eventCmd builds a command that solves one event for the site.
func (a *app) eventCmd(loc *location, use, short, title string, solve eventFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEvent(cmd, loc, title, solve)
		},
	}
}

func (a *app) runEvent(cmd *cobra.Command, loc *location, title string, solve eventFunc) error {
	obs, jd, err := a.siteAndDate(cmd, loc)
	if err != nil {
		return err
	}
	tr := a.trace()
	e, err := solve(obs, jd, tr)
	if err != nil {
		return err
	}
	res := output.NewResult(title)
	a.addEvent(res, "time", title, e, obs)
	if e.OK {
		res.Add("jd", "JD", e.JD.JD(), a.prec().JD(e.JD))
	}
	addObserver(res, obs)
	return a.render.Result(res, tr)
}

// siteAndDate resolves the observer and --date together.
func (a *app) siteAndDate(cmd *cobra.Command, loc *location) (astro.Observer, astro.JulianDate, error) {
	obs, err := a.observer(cmd, loc)
	if err != nil {
		return astro.Observer{}, astro.JulianDate{}, err
	}
	jd, err := a.when()
	if err != nil {
		return astro.Observer{}, astro.JulianDate{}, err
	}
	return obs, jd, nil
}
