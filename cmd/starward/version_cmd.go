package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			res := output.NewResult("starward")
			res.Add("version", "Version", version.Version, version.String())
			if version.Commit != "" {
				res.Add("commit", "Commit", version.Commit, "")
			}
			return a.render.Result(res, nil)
		},
	}
}
