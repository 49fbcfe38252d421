package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
)

func newConstantsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "constants [KEY]",
		Aliases: []string{"const"},
		Short:   "Astronomical constants used in the calculations",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				c, err := astro.LookupConstant(args[0])
				if err != nil {
					return err
				}
				res := output.NewResult(c.Name)
				res.Add("key", "Key", c.Key, "")
				res.Add("value", "Value", c.Value, constantValue(c))
				if c.Reference != "" {
					res.Add("reference", "Reference", c.Reference, "")
				}
				if c.Description != "" {
					res.Add("description", "Description", c.Description, "")
				}
				return a.render.Result(res, nil)
			}

			t := &output.Table{
				Title:   "Constants",
				Columns: []string{"Key", "Name", "Value", "Reference"},
			}
			for _, c := range astro.Constants() {
				t.Rows = append(t.Rows, []string{c.Key, c.Name, constantValue(c), c.Reference})
				t.Records = append(t.Records, map[string]any{
					"key":         c.Key,
					"name":        c.Name,
					"value":       c.Value,
					"unit":        c.Unit,
					"reference":   c.Reference,
					"description": c.Description,
				})
			}
			return a.render.Table(t, nil)
		},
	}
}

func constantValue(c astro.Constant) string {
	v := strconv.FormatFloat(c.Value, 'g', -1, 64)
	if c.Unit != "" {
		v += " " + c.Unit
	}
	return v
}
