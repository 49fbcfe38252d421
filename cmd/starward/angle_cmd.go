package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
)

func newAngleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "angle",
		Short: "Parse and convert angles",
	}

	var hours bool
	parse := &cobra.Command{
		Use:   "parse TEXT",
		Short: "Parse an angle and show it in every unit",
		Long: `Parse sexagesimal (12h30m15s, 45d30m00s, 45°30′00″), colon (45:30:00),
space separated (45 30 00) or decimal (45.5) angles. Colon and space
forms are degrees unless --hours is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			parseFn := astro.ParseAngle
			if hours {
				parseFn = astro.ParseHours
			}
			v, err := parseFn(args[0])
			if err != nil {
				return err
			}
			return a.render.Result(a.angleResult("Angle", args[0], v), nil)
		},
	}
	parse.Flags().BoolVar(&hours, "hours", false, "read colon, space and plain forms as hours")

	var from, to string
	convert := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Convert a value between angular units",
		Long: `Convert a number between degrees, radians, hours, arcminutes and
arcseconds. With no --to, every unit is shown.

Examples:
  starward angle convert 1.5 --from rad --to deg
  starward angle convert 90 --from deg`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			value, err := parseFloat(args[0])
			if err != nil {
				return fmt.Errorf("angle value %q: %w", args[0], astro.ErrParse)
			}
			fromUnit, err := astro.ParseUnit(from)
			if err != nil {
				return err
			}
			v, err := astro.NewAngle(map[astro.Unit]float64{fromUnit: value})
			if err != nil {
				return err
			}
			if to == "" {
				return a.render.Result(a.angleResult("Angle conversion", args[0]+" "+fromUnit.String(), v), nil)
			}
			toUnit, err := astro.ParseUnit(to)
			if err != nil {
				return err
			}
			out := inUnit(v, toUnit)
			res := output.NewResult("Angle conversion").
				Add("input", "Input", value, args[0]+" "+fromUnit.String()).
				Add("value", "Value", out, a.prec().Float(out)+" "+toUnit.String()).
				Add("unit", "Unit", toUnit.String(), "")
			return a.render.Result(res, nil)
		},
	}
	convert.Flags().StringVar(&from, "from", "deg", "input unit (deg, rad, hours, arcmin, arcsec)")
	convert.Flags().StringVar(&to, "to", "", "output unit (default: all)")

	cmd.AddCommand(parse, convert)
	return cmd
}

func inUnit(v astro.Angle, u astro.Unit) float64 {
	switch u {
	case astro.UnitRadians:
		return v.Radians()
	case astro.UnitHours:
		return v.Hours()
	case astro.UnitArcminutes:
		return v.Arcminutes()
	case astro.UnitArcseconds:
		return v.Arcseconds()
	default:
		return v.Degrees()
	}
}

func (a *app) angleResult(title, input string, v astro.Angle) *output.Result {
	p := a.prec()
	return output.NewResult(title).
		Add("input", "Input", input, "").
		Add("degrees", "Degrees", v.Degrees(), p.Degrees(v)).
		Add("radians", "Radians", v.Radians(), p.Radians(v)).
		Add("hours", "Hours", v.Hours(), p.Hours(v)).
		Add("arcminutes", "Arcminutes", v.Arcminutes(), p.Float(v.Arcminutes())+"′").
		Add("arcseconds", "Arcseconds", v.Arcseconds(), p.Float(v.Arcseconds())+"″").
		Add("dms", "DMS", p.DMS(v), "").
		Add("hms", "HMS", p.HMS(v), "")
}
