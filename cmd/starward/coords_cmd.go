package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/verbose"
)

func newCoordsCmd(a *app) *cobra.Command {
	loc := &location{}
	cmd := &cobra.Command{
		Use:   "coords",
		Short: "Convert coordinates and measure separations",
	}
	addLocationFlags(cmd, loc)

	var from, to string
	convert := &cobra.Command{
		Use:   "convert COORDS",
		Short: "Convert between ICRS, galactic and horizontal frames",
		Long: `Convert a position between frames. ICRS input is "RA Dec", galactic
input is "l b" in degrees and horizontal input is "alt az" in degrees.
The horizontal frame needs an observer and uses --date.

Examples:
  starward coords convert "17h45m40s -29d00m28s" --to galactic
  starward coords convert "0 0" --from galactic --to icrs
  starward coords convert "45 180" --from horizontal --to icrs --lat 40 --lon -105`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFrame, err := astro.ParseFrame(from)
			if err != nil {
				return err
			}
			toFrame, err := astro.ParseFrame(to)
			if err != nil {
				return err
			}
			c, err := parseCoordinate(args[0], fromFrame)
			if err != nil {
				return err
			}

			var obs astro.Observer
			var jd astro.JulianDate
			if fromFrame == astro.FrameHorizontal || toFrame == astro.FrameHorizontal {
				if obs, err = a.observer(cmd, loc); err != nil {
					return err
				}
				if jd, err = a.when(); err != nil {
					return err
				}
			}

			tr := a.trace()
			out, err := astro.Transform(c, toFrame, obs, jd, tr)
			if err != nil {
				return err
			}
			res := output.NewResult(fmt.Sprintf("%s → %s", fromFrame, toFrame))
			res.Add("from", "From", fromFrame.String(), strings.TrimSpace(args[0]))
			a.addCoordinate(res, out)
			if toFrame == astro.FrameHorizontal || fromFrame == astro.FrameHorizontal {
				res.Add("jd", "JD", jd.JD(), a.prec().JD(jd))
				addObserver(res, obs)
			}
			return a.render.Result(res, tr)
		},
	}
	convert.Flags().StringVar(&from, "from", "icrs", "input frame (icrs, galactic, horizontal)")
	convert.Flags().StringVar(&to, "to", "galactic", "output frame (icrs, galactic, horizontal)")

	sep := &cobra.Command{
		Use:   "sep COORDS1 COORDS2",
		Short: "Angular separation of two ICRS positions (Vincenty)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.pairCommand(args, "Separation", "separation", func(c1, c2 astro.ICRSCoord, tr *verbose.Trace) astro.Angle {
				return c1.SeparationTo(c2, tr)
			})
		},
	}

	pa := &cobra.Command{
		Use:   "pa COORDS1 COORDS2",
		Short: "Position angle of the second position from the first, east of north",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.pairCommand(args, "Position angle", "position_angle", func(c1, c2 astro.ICRSCoord, tr *verbose.Trace) astro.Angle {
				return c1.PositionAngleTo(c2, tr)
			})
		},
	}

	cmd.AddCommand(convert, sep, pa)
	return cmd
}

func (a *app) pairCommand(args []string, title, key string, fn func(c1, c2 astro.ICRSCoord, tr *verbose.Trace) astro.Angle) error {
	c1, err := astro.ParseICRS(args[0])
	if err != nil {
		return err
	}
	c2, err := astro.ParseICRS(args[1])
	if err != nil {
		return err
	}
	tr := a.trace()
	v := fn(c1, c2, tr)

	p := a.prec()
	res := output.NewResult(title).
		Add("first", "First", c1.String(), "").
		Add("second", "Second", c2.String(), "").
		Add(key, title, v.Degrees(), p.Degrees(v)+"  ("+p.DMS(v)+")")
	return a.render.Result(res, tr)
}

// parseCoordinate reads text in the given frame.
func parseCoordinate(text string, frame astro.Frame) (astro.Coordinate, error) {
	if frame == astro.FrameICRS {
		return astro.ParseICRS(text)
	}

	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(fields) != 2 {
		return nil, fmt.Errorf("%s coordinates %q: want two angles: %w", frame, text, astro.ErrParse)
	}
	first, err := astro.ParseAngle(fields[0])
	if err != nil {
		return nil, err
	}
	second, err := astro.ParseAngle(fields[1])
	if err != nil {
		return nil, err
	}

	if frame == astro.FrameGalactic {
		return astro.NewGalacticCoord(first, second)
	}
	return astro.NewHorizontalCoord(first, second)
}

func (a *app) addCoordinate(res *output.Result, c astro.Coordinate) {
	switch v := c.(type) {
	case astro.ICRSCoord:
		a.addRA(res, "ra", "RA", v.RA)
		a.addDec(res, "dec", "Dec", v.Dec)
	case astro.GalacticCoord:
		a.addDegrees(res, "l", "Galactic l", v.L)
		res.Add("b", "Galactic b", v.B.Degrees(), a.prec().SignedDegrees(v.B))
	case astro.HorizontalCoord:
		a.addHorizontal(res, v)
		if am, ok := v.Airmass(); ok {
			a.addFloat(res, "airmass", "Airmass", am, "")
		}
	}
}
