package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
)

func newMoonCmd(a *app) *cobra.Command {
	loc := &location{}
	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Lunar position, phase, rise and set",
	}
	addLocationFlags(cmd, loc)

	position := &cobra.Command{
		Use:   "position",
		Short: "Apparent lunar position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jd, err := a.when()
			if err != nil {
				return err
			}
			tr := a.trace()
			moon := astro.MoonAt(jd, tr)

			res := output.NewResult("Moon")
			res.Add("jd", "JD", jd.JD(), a.prec().JD(jd))
			a.addRA(res, "ra", "RA", moon.RA)
			a.addDec(res, "dec", "Dec", moon.Dec)
			a.addDegrees(res, "longitude", "Ecliptic longitude", moon.Longitude)
			res.Add("latitude", "Ecliptic latitude", moon.Latitude.Degrees(), a.prec().SignedDegrees(moon.Latitude))
			res.Add("distance_km", "Distance", moon.DistanceKm, output.FormatDistance(moon.DistanceKm))
			a.addDegrees(res, "parallax", "Parallax", moon.Parallax)
			res.Add("diameter_arcmin", "Angular diameter", moon.AngularDiameter.Arcminutes(), a.prec().Float(moon.AngularDiameter.Arcminutes())+"′")

			obs, ok, err := a.optionalObserver(cmd, loc)
			if err != nil {
				return err
			}
			if ok {
				a.addHorizontal(res, moon.ICRS().ToHorizontal(obs, jd, tr))
				addObserver(res, obs)
			}
			return a.render.Result(res, tr)
		},
	}

	phase := &cobra.Command{
		Use:   "phase",
		Short: "Illumination, age and named phase",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			jd, err := a.when()
			if err != nil {
				return err
			}
			tr := a.trace()
			info := astro.MoonPhase(jd, tr)

			res := output.NewResult("Moon phase")
			res.Add("phase", "Phase", info.Phase.String(), "")
			res.Add("illumination", "Illuminated", info.Illumination, a.prec().Float(info.PercentIlluminated)+"%")
			a.addFloat(res, "age_days", "Age", info.AgeDays, "days")
			a.addDegrees(res, "phase_angle", "Elongation", info.PhaseAngle)
			return a.render.Result(res, tr)
		},
	}

	rise := a.eventCmd(loc, "rise", "Next moonrise", "Moonrise", astro.Moonrise)
	set := a.eventCmd(loc, "set", "Next moonset", "Moonset", astro.Moonset)
	transit := a.eventCmd(loc, "transit", "Lunar meridian transit", "Moon transit", astro.MoonTransit)

	var target string
	next := &cobra.Command{
		Use:   "next",
		Short: "Next occurrence of a lunar phase",
		Long: `Find the next time the Moon reaches a phase strictly after --date.

Examples:
  starward moon next --phase full
  starward moon next --phase new --date 2024-01-01`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := astro.ParseLunarPhase(target)
			if err != nil {
				return err
			}
			jd, err := a.when()
			if err != nil {
				return err
			}
			tr := a.trace()
			at, err := astro.NextPhase(jd, p, tr)
			if err != nil {
				return err
			}
			res := output.NewResult("Next " + p.String())
			res.Add("phase", "Phase", p.String(), "")
			res.Add("time", "Time", at.Time().Format(time.RFC3339), a.prec().Time(at))
			res.Add("jd", "JD", at.JD(), a.prec().JD(at))
			a.addFloat(res, "days", "In", at.Sub(jd), "days")
			return a.render.Result(res, tr)
		},
	}
	next.Flags().StringVar(&target, "phase", "full", "new, first quarter, full, last quarter, or an intermediate phase")

	cmd.AddCommand(position, phase, rise, set, transit, next)
	return cmd
}
