package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/verbose"
)

func newVisCmd(a *app) *cobra.Command {
	loc := &location{}
	cmd := &cobra.Command{
		Use:     "vis",
		Aliases: []string{"visibility"},
		Short:   "When and where a target can be seen",
		Long: `Visibility of a body, catalog star or coordinate from the observer.

TARGET is a name (sun, moon, mars, sirius, ...) or coordinates such as
"05h55m10s +07d24m25s" or "88.79 7.41".`,
	}
	addLocationFlags(cmd, loc)

	altitude := &cobra.Command{
		Use:   "altitude TARGET",
		Short: "Current altitude, azimuth and airmass",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, obs, jd, err := a.target(cmd, loc, args)
			if err != nil {
				return err
			}
			tr := a.trace()
			pt, err := ephem.At(p, obs, jd, tr)
			if err != nil {
				return err
			}
			res := output.NewResult(p.Name())
			a.addRA(res, "ra", "RA", pt.Coord.RA)
			a.addDec(res, "dec", "Dec", pt.Coord.Dec)
			a.addHorizontal(res, pt.Horizontal)
			a.addAirmass(res, pt.Horizontal.Alt, tr)
			addObserver(res, obs)
			return a.render.Result(res, tr)
		},
	}

	transit := &cobra.Command{
		Use:   "transit TARGET",
		Short: "Meridian transit and culmination altitude",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, obs, jd, err := a.target(cmd, loc, args)
			if err != nil {
				return err
			}
			tr := a.trace()
			e, alt, err := transitOf(p, obs, jd, tr)
			if err != nil {
				return err
			}
			res := output.NewResult(p.Name() + " transit")
			a.addEvent(res, "transit", "Transit", e, obs)
			res.Add("transit_altitude", "Altitude", alt.Degrees(), a.prec().SignedDegrees(alt))
			addObserver(res, obs)
			return a.render.Result(res, tr)
		},
	}

	risesets := &cobra.Command{
		Use:     "risesets TARGET",
		Aliases: []string{"riseset"},
		Short:   "Rise, transit and set in the next 24 h",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, obs, jd, err := a.target(cmd, loc, args)
			if err != nil {
				return err
			}
			tr := a.trace()
			ev, err := p.RiseSet(obs, jd, tr)
			if err != nil {
				return err
			}
			res := output.NewResult(p.Name())
			a.addRiseSet(res, ev, obs)
			addObserver(res, obs)
			return a.render.Result(res, tr)
		},
	}

	report := &cobra.Command{
		Use:   "report TARGET",
		Short: "Full observing report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, obs, jd, err := a.target(cmd, loc, args)
			if err != nil {
				return err
			}
			tr := a.trace()
			v, err := visibilityOf(p, obs, jd, tr)
			if err != nil {
				return err
			}

			prec := a.prec()
			res := output.NewResult(p.Name() + " visibility")
			a.addRA(res, "ra", "RA", v.Target.RA)
			a.addDec(res, "dec", "Dec", v.Target.Dec)
			res.Add("altitude", "Altitude", v.Altitude.Degrees(), prec.SignedDegrees(v.Altitude))
			res.Add("azimuth", "Azimuth", v.Azimuth.Degrees(), prec.Degrees(v.Azimuth))
			if v.HasAirmass {
				a.addFloat(res, "airmass", "Airmass", v.Airmass, "")
			} else {
				res.Add("airmass", "Airmass", nil, "below horizon")
			}
			res.Add("hour_angle", "Hour angle", v.HourAngle.Hours(), prec.Hours(v.HourAngle))
			a.addRiseSet(res, astro.RiseSetTimes{
				Rise:            v.Rise,
				Set:             v.Set,
				Transit:         v.Transit,
				TransitAltitude: v.TransitAltitude,
				Circumpolar:     v.Circumpolar,
				NeverRises:      v.NeverRises,
			}, obs)
			if p.Kind() != ephem.KindSun {
				sep := astro.SunSeparation(v.Target, jd, nil)
				res.Add("sun_separation", "Sun separation", sep.Degrees(), prec.Degrees(sep))
			}
			if p.Kind() != ephem.KindMoon {
				res.Add("moon_separation", "Moon separation", v.MoonSeparation.Degrees(), prec.Degrees(v.MoonSeparation))
			}
			res.Add("moon_illumination", "Moon illuminated", v.MoonIllumination, prec.Float(v.MoonIllumination*100)+"%")
			res.Add("sun_altitude", "Sun altitude", v.SunAltitude.Degrees(), prec.SignedDegrees(v.SunAltitude))
			night := "no"
			if v.IsNight {
				night = "yes"
			}
			res.Add("night", "Astronomical night", v.IsNight, night)
			addObserver(res, obs)
			return a.render.Result(res, tr)
		},
	}

	airmass := &cobra.Command{
		Use:   "airmass ALT",
		Short: "Airmass at an apparent altitude",
		Long: `Pickering (2002) airmass for an apparent altitude in degrees or
sexagesimal form. No observer is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			alt, err := astro.ParseAngle(args[0])
			if err != nil {
				return err
			}
			tr := a.trace()
			res := output.NewResult("Airmass")
			res.Add("altitude", "Altitude", alt.Degrees(), a.prec().SignedDegrees(alt))
			a.addAirmass(res, alt, tr)
			return a.render.Result(res, tr)
		},
	}

	cmd.AddCommand(altitude, transit, risesets, report, airmass)
	return cmd
}

// target resolves TARGET (joined, so unquoted coordinates work), the
// observer and --date.
func (a *app) target(cmd *cobra.Command, loc *location, args []string) (ephem.Provider, astro.Observer, astro.JulianDate, error) {
	p, err := ephem.Resolve(strings.Join(args, " "))
	if err != nil {
		return nil, astro.Observer{}, astro.JulianDate{}, err
	}
	obs, jd, err := a.siteAndDate(cmd, loc)
	if err != nil {
		return nil, astro.Observer{}, astro.JulianDate{}, err
	}
	return p, obs, jd, nil
}

func (a *app) addAirmass(res *output.Result, alt astro.Angle, tr *verbose.Trace) {
	am, ok := astro.Airmass(alt, tr)
	if !ok {
		res.Add("airmass", "Airmass", nil, "below horizon")
		return
	}
	a.addFloat(res, "airmass", "Airmass", am, "")
}

// transitOf returns the transit of p nearest jd + 12 h for moving bodies
// and nearest jd for fixed ones, with the altitude at that instant.
func transitOf(p ephem.Provider, obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.Event, astro.Angle, error) {
	if c, ok := fixedCoord(p); ok {
		t, err := astro.TransitTime(c, obs, jd, tr)
		if err != nil {
			return astro.Event{}, astro.Angle{}, err
		}
		return astro.Event{JD: t, OK: true}, astro.TransitAltitude(c, obs, tr), nil
	}
	ev, err := p.RiseSet(obs, jd, tr)
	if err != nil {
		return astro.Event{}, astro.Angle{}, err
	}
	return ev.Transit, ev.TransitAltitude, nil
}

// visibilityOf builds the report at the body's current position. Moving
// bodies get their events from the provider so the search follows them.
func visibilityOf(p ephem.Provider, obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.TargetVisibility, error) {
	c, err := p.Position(jd, nil)
	if err != nil {
		return astro.TargetVisibility{}, err
	}
	v, err := astro.ComputeVisibility(c, obs, jd, tr)
	if err != nil {
		return astro.TargetVisibility{}, err
	}
	if _, fixed := fixedCoord(p); fixed {
		return v, nil
	}
	ev, err := p.RiseSet(obs, jd, nil)
	if err != nil {
		return astro.TargetVisibility{}, err
	}
	v.Rise, v.Set, v.Transit = ev.Rise, ev.Set, ev.Transit
	v.TransitAltitude = ev.TransitAltitude
	v.Circumpolar, v.NeverRises = ev.Circumpolar, ev.NeverRises
	return v, nil
}

// fixedCoord reports the position of a provider that does not move.
func fixedCoord(p ephem.Provider) (astro.ICRSCoord, bool) {
	switch p.Kind() {
	case ephem.KindStar, ephem.KindFixed:
		c, err := p.Position(astro.JulianDate{}, nil)
		return c, err == nil
	}
	return astro.ICRSCoord{}, false
}
