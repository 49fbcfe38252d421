package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
)

func newObserverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "observer",
		Aliases: []string{"observers", "site"},
		Short:   "Manage saved observing sites",
	}

	var (
		lat, lon, elevation float64
		tz                  string
		makeDefault         bool
	)
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Save a site, replacing one with the same name",
		Long: `Save an observing site to the observer file.

The first site saved becomes the default.

Examples:
  starward observer add greenwich --lat 51.4769 --lon -0.0005 --tz Europe/London
  starward observer add "Mauna Kea" --lat 19.8207 --lon -155.4681 --elevation 4205 --default`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return fmt.Errorf("observer add: --lat and --lon are required: %w", astro.ErrInvalidArgument)
			}
			obs, err := astro.NewObserver(strings.Join(args, " "), lat, lon, elevation, tz)
			if err != nil {
				return err
			}
			if _, err := obs.Location(); err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			if err := reg.Add(obs); err != nil {
				return err
			}
			if makeDefault {
				if err := reg.SetDefault(obs.Name); err != nil {
					return err
				}
			}
			if err := reg.Save(); err != nil {
				return err
			}
			a.log.Info("saved observer %q to %s", obs.Name, reg.Path())

			res := output.NewResult("Saved observer")
			res.Add("observer", "Observer", obs.ToMap(), obs.String())
			res.Add("default", "Default", reg.IsDefault(obs.Name), yesNo(reg.IsDefault(obs.Name)))
			return a.render.Result(res, nil)
		},
	}
	add.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees, north positive")
	add.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees, east positive")
	add.Flags().Float64Var(&elevation, "elevation", 0, "elevation in metres")
	add.Flags().StringVar(&tz, "tz", "", "IANA timezone, e.g. America/Denver")
	add.Flags().BoolVar(&makeDefault, "default", false, "make this the default site")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved sites",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			prec := a.prec()
			t := &output.Table{
				Title:   "Observers",
				Columns: []string{"", "Name", "Latitude", "Longitude", "Elevation", "Timezone"},
			}
			for _, obs := range reg.List() {
				mark := ""
				if reg.IsDefault(obs.Name) {
					mark = "*"
				}
				t.Rows = append(t.Rows, []string{
					mark,
					obs.Name,
					prec.SignedDegrees(obs.Latitude),
					prec.SignedDegrees(obs.Longitude),
					fmt.Sprintf("%.0f m", obs.Elevation),
					obs.Timezone,
				})
				rec := obs.ToMap()
				rec["default"] = mark != ""
				t.Records = append(t.Records, rec)
			}
			if len(t.Rows) == 0 && a.render.Format() == output.FormatPlain {
				return a.render.Message("No observers saved. Add one with: starward observer add NAME --lat LAT --lon LON")
			}
			return a.render.Table(t, nil)
		},
	}

	show := &cobra.Command{
		Use:   "show [NAME]",
		Short: "Show a site, or the default",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			obs, err := reg.Resolve(strings.Join(args, " "))
			if err != nil {
				return err
			}
			prec := a.prec()
			res := output.NewResult(obs.Name)
			res.Add("latitude", "Latitude", obs.Latitude.Degrees(), prec.DMS(obs.Latitude)+"  ("+prec.SignedDegrees(obs.Latitude)+")")
			res.Add("longitude", "Longitude", obs.Longitude.Degrees(), prec.DMS(obs.Longitude)+"  ("+prec.SignedDegrees(obs.Longitude)+")")
			a.addFloat(res, "elevation", "Elevation", obs.Elevation, "m")
			if obs.Timezone != "" {
				res.Add("timezone", "Timezone", obs.Timezone, "")
			}
			res.Add("default", "Default", reg.IsDefault(obs.Name), yesNo(reg.IsDefault(obs.Name)))
			return a.render.Result(res, nil)
		},
	}

	remove := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a saved site",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if err := reg.Remove(name); err != nil {
				return err
			}
			if err := reg.Save(); err != nil {
				return err
			}
			return a.render.Message(fmt.Sprintf("Removed observer %q", name))
		},
	}

	setDefault := &cobra.Command{
		Use:   "default NAME",
		Short: "Make a saved site the default",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if err := reg.SetDefault(name); err != nil {
				return err
			}
			if err := reg.Save(); err != nil {
				return err
			}
			return a.render.Message(fmt.Sprintf("Default observer is now %q", name))
		},
	}

	cmd.AddCommand(add, list, show, remove, setDefault)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
