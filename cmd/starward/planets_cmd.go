package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/verbose"
)

func newPlanetsCmd(a *app) *cobra.Command {
	loc := &location{}
	cmd := &cobra.Command{
		Use:     "planets",
		Aliases: []string{"planet"},
		Short:   "Planetary positions and events",
	}
	addLocationFlags(cmd, loc)

	position := &cobra.Command{
		Use:   "position NAME",
		Short: "Position, distance and appearance of one planet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := astro.ParsePlanet(args[0])
			if err != nil {
				return err
			}
			jd, err := a.when()
			if err != nil {
				return err
			}
			tr := a.trace()
			pos, err := astro.PlanetAt(p, jd, tr)
			if err != nil {
				return err
			}

			prec := a.prec()
			res := output.NewResult(p.Symbol() + " " + p.String())
			res.Add("jd", "JD", jd.JD(), prec.JD(jd))
			a.addRA(res, "ra", "RA", pos.RA)
			a.addDec(res, "dec", "Dec", pos.Dec)
			a.addFloat(res, "distance_au", "Distance", pos.Distance, "AU")
			res.Add("light_time", "Light time", astro.LightTime(pos.Distance), output.FormatLightTime(astro.LightTime(pos.Distance)))
			a.addDegrees(res, "helio_longitude", "Heliocentric longitude", pos.HelioLongitude)
			res.Add("helio_latitude", "Heliocentric latitude", pos.HelioLatitude.Degrees(), prec.SignedDegrees(pos.HelioLatitude))
			a.addFloat(res, "helio_distance_au", "Sun distance", pos.HelioDistance, "AU")
			a.addDegrees(res, "elongation", "Elongation", pos.Elongation)
			a.addDegrees(res, "phase_angle", "Phase angle", pos.PhaseAngle)
			res.Add("illumination", "Illuminated", pos.Illumination, prec.Float(pos.Illumination*100)+"%")
			a.addFloat(res, "diameter_arcsec", "Angular diameter", pos.AngularDiameter, "″")
			res.Add("magnitude", "Magnitude", pos.Magnitude, fmt.Sprintf("%+.2f", pos.Magnitude))

			obs, ok, err := a.optionalObserver(cmd, loc)
			if err != nil {
				return err
			}
			if ok {
				a.addHorizontal(res, pos.ICRS().ToHorizontal(obs, jd, tr))
				addObserver(res, obs)
			}
			return a.render.Result(res, tr)
		},
	}

	all := &cobra.Command{
		Use:   "all",
		Short: "Table of every planet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jd, err := a.when()
			if err != nil {
				return err
			}
			tr := a.trace()
			positions, err := astro.AllPlanets(jd, tr)
			if err != nil {
				return err
			}
			obs, ok, err := a.optionalObserver(cmd, loc)
			if err != nil {
				return err
			}

			prec := a.prec()
			t := &output.Table{
				Title:   "Planets at " + prec.Time(jd),
				Columns: []string{"Planet", "RA", "Dec", "Dist (AU)", "Elong", "Illum", "Mag"},
			}
			if ok {
				t.Columns = append(t.Columns, "Alt", "Az")
			}
			for _, pos := range positions {
				row := []string{
					pos.Planet.Symbol() + " " + pos.Planet.String(),
					prec.HMS(pos.RA),
					prec.DMS(pos.Dec),
					fmt.Sprintf("%.3f", pos.Distance),
					fmt.Sprintf("%.1f°", pos.Elongation.Degrees()),
					fmt.Sprintf("%.0f%%", pos.Illumination*100),
					fmt.Sprintf("%+.1f", pos.Magnitude),
				}
				rec := map[string]any{
					"planet":       pos.Planet.String(),
					"ra":           pos.RA.Degrees(),
					"dec":          pos.Dec.Degrees(),
					"distance_au":  pos.Distance,
					"elongation":   pos.Elongation.Degrees(),
					"illumination": pos.Illumination,
					"magnitude":    pos.Magnitude,
				}
				if ok {
					hz := pos.ICRS().ToHorizontal(obs, jd, nil)
					row = append(row, fmt.Sprintf("%+.1f°", hz.Alt.Degrees()), fmt.Sprintf("%.1f°", hz.Az.Degrees()))
					rec["altitude"] = hz.Alt.Degrees()
					rec["azimuth"] = hz.Az.Degrees()
				}
				t.Rows = append(t.Rows, row)
				t.Records = append(t.Records, rec)
			}
			return a.render.Table(t, tr)
		},
	}

	cmd.AddCommand(position, all,
		a.planetEventCmd(loc, "rise", "Next rise of a planet", astro.PlanetRise),
		a.planetEventCmd(loc, "set", "Next set of a planet", astro.PlanetSet),
		a.planetEventCmd(loc, "transit", "Meridian transit of a planet", astro.PlanetTransit),
	)
	return cmd
}

type planetEventFunc func(astro.Planet, astro.Observer, astro.JulianDate, *verbose.Trace) (astro.Event, error)

func (a *app) planetEventCmd(loc *location, use, short string, solve planetEventFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := astro.ParsePlanet(args[0])
			if err != nil {
				return err
			}
			title := p.String() + " " + use
			return a.runEvent(cmd, loc, title, func(obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.Event, error) {
				return solve(p, obs, jd, tr)
			})
		},
	}
}
