package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List valid packages sorted by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			packages, err := listPackages(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			printPackages(cmd.OutOrStdout(), packages)
			return nil
		},
	}

	addPackageFlags(cmd.Flags())
	return cmd
}

func printPackages(w io.Writer, packages []models.PackageInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tID\tPOOL\tVERSION\tLAST MODIFIED")

	for _, pkg := range packages {
		pool := color.GreenString(string(pkg.Pool))
		if pkg.Pool == models.PoolNonFree {
			pool = color.YellowString(string(pkg.Pool))
		}
		if pkg.NoPool {
			pool += color.CyanString("*")
		}

		version := "-"
		if pkg.Manifest != nil {
			version = pkg.Manifest.Version
		}
		if pkg.ManifestBeta != nil {
			version += " (beta " + pkg.ManifestBeta.Version + ")"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", pkg.Title, pkg.ID, pool, version, pkg.LastModifiedStr)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d packages", len(packages))
	if len(packages) > 0 {
		fmt.Fprintf(w, " (%s pool not declared)", color.CyanString("*"))
	}
	fmt.Fprintln(w)
}
