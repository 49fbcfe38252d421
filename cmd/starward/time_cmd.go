package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
)

func newTimeCmd(a *app) *cobra.Command {
	loc := &location{}
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Julian Dates and sidereal time",
	}
	addLocationFlags(cmd, loc)

	now := &cobra.Command{
		Use:   "now",
		Short: "Show the current instant as JD, MJD and sidereal time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jd, err := a.when()
			if err != nil {
				return err
			}
			return a.showTime(cmd, loc, "Time", jd)
		},
	}

	var from string
	convert := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Convert between calendar date, JD, MJD and Unix time",
		Long: `Convert an instant given as a calendar date, Julian Date, Modified
Julian Date or Unix time.

Examples:
  starward time convert 2451545.0
  starward time convert "2024-03-20 03:06"
  starward time convert 60000 --from mjd
  starward time convert 1700000000 --from unix`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jd, err := convertInstant(args[0], from)
			if err != nil {
				return err
			}
			return a.showTime(cmd, loc, "Time conversion", jd)
		},
	}
	convert.Flags().StringVar(&from, "from", "auto", "input kind (auto, jd, mjd, unix, date)")

	cmd.AddCommand(now, convert)
	return cmd
}

// convertInstant reads text as the given kind. auto takes numbers as JD and
// anything else as a date.
func convertInstant(text, kind string) (astro.JulianDate, error) {
	switch strings.ToLower(kind) {
	case "jd":
		v, err := parseFloat(text)
		if err != nil {
			return astro.JulianDate{}, fmt.Errorf("julian date %q: %w", text, astro.ErrParse)
		}
		return astro.NewJulianDate(v), nil
	case "mjd":
		v, err := parseFloat(text)
		if err != nil {
			return astro.JulianDate{}, fmt.Errorf("mjd %q: %w", text, astro.ErrParse)
		}
		return astro.FromMJD(v), nil
	case "unix":
		v, err := parseFloat(text)
		if err != nil {
			return astro.JulianDate{}, fmt.Errorf("unix time %q: %w", text, astro.ErrParse)
		}
		return astro.FromUnix(v), nil
	case "date", "auto", "":
		return parseWhen(text, time.Now())
	}
	return astro.JulianDate{}, fmt.Errorf("input kind %q: %w", kind, astro.ErrInvalidArgument)
}

func (a *app) showTime(cmd *cobra.Command, loc *location, title string, jd astro.JulianDate) error {
	tr := a.trace()
	p := a.prec()

	res := output.NewResult(title)
	res.Add("utc", "UTC", jd.Time().Format(time.RFC3339Nano), p.Time(jd))
	res.Add("jd", "JD", jd.JD(), p.JD(jd))
	res.Add("mjd", "MJD", jd.MJD(), p.Float(jd.MJD()))
	res.Add("unix", "Unix", jd.Time().Unix(), "")
	res.Add("t", "Julian centuries", jd.T(), p.Float(jd.T()))

	obs, ok, err := a.optionalObserver(cmd, loc)
	if err != nil {
		return err
	}

	// LST traces the GMST steps itself.
	gmstTrace := tr
	if ok {
		gmstTrace = nil
	}
	gmst := astro.FromHours(jd.GMST(gmstTrace))
	res.Add("gmst", "GMST", gmst.Hours(), p.HMS(gmst))

	if ok {
		lst := astro.FromHours(jd.LST(obs.Longitude, tr))
		res.Add("lst", "LST", lst.Hours(), p.HMS(lst))
		if zone, err := obs.Location(); err == nil && obs.Timezone != "" {
			res.Add("local", "Local", jd.Time().In(zone).Format(time.RFC3339), jd.Time().In(zone).Format("2006-01-02 15:04:05 MST"))
		}
		addObserver(res, obs)
	}
	return a.render.Result(res, tr)
}
