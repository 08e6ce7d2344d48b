package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vbonduro/drinklog/internal/catalog"
	"github.com/vbonduro/drinklog/internal/catalog/convex"
	"github.com/vbonduro/drinklog/internal/domain"
)

var (
	catalogCategory string
	catalogRefresh  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and manage the popular drinks catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog drinks",
	RunE: func(cmd *cobra.Command, args []string) error {
		category := domain.Category(catalogCategory)
		if category != "" && !category.Valid() {
			return fmt.Errorf("invalid --category %q (expected alcohol or caffeine)", catalogCategory)
		}

		return withApp(cmd.Context(), func(a *app) error {
			if catalogRefresh {
				res, err := a.catalog.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				for _, f := range res.Trail {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s unavailable: %v\n", f.Provider, f.Err)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "NAME\tCATEGORY\tVOLUME\tCONTENT\n")
			for _, d := range a.catalog.Drinks(category) {
				fmt.Fprintf(tw, "%s\t%s\t%.0f ml\t%s\n", d.Name, d.Category, d.VolumeML, content(d))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\n", a.catalog.Source())
			return nil
		})
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the seed mutation on the Convex deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.requireRemote(); err != nil {
				return err
			}
			res, err := a.remote.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d drinks: %d inserted, %d updated\n", res.Total, res.Inserted, res.Updated)
			return nil
		})
	},
}

var catalogPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the built-in drinks to the Convex deployment",
	Long:  "push adds every built-in drink the deployment does not have yet and updates the ones it has.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.requireRemote(); err != nil {
				return err
			}

			var added, updated int
			for _, d := range catalog.Defaults() {
				_, exists, err := a.remote.DrinkByName(cmd.Context(), d.Name)
				if err != nil {
					return fmt.Errorf("failed to look up %q: %w", d.Name, err)
				}
				if !exists {
					if _, err := a.remote.AddDrink(cmd.Context(), d); err != nil {
						return fmt.Errorf("failed to add %q: %w", d.Name, err)
					}
					added++
					continue
				}
				if _, err := a.remote.UpdateDrinkByName(cmd.Context(), d.Name, updateFor(d)); err != nil {
					return fmt.Errorf("failed to update %q: %w", d.Name, err)
				}
				updated++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d drinks: %d added, %d updated\n", added+updated, added, updated)
			return nil
		})
	},
}

var catalogClearCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop the cached catalog and fall back to the built-in drinks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.catalog.ClearCache(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog cache cleared")
			return nil
		})
	},
}

func updateFor(d domain.CatalogDrink) convex.Update {
	category := d.Category
	return convex.Update{
		ImageName:         &d.ImageName,
		VolumeML:          &d.VolumeML,
		Category:          &category,
		AlcoholPercentage: d.AlcoholPercentage,
		CaffeineMg:        d.CaffeineMg,
	}
}

func content(d domain.CatalogDrink) string {
	switch {
	case d.AlcoholPercentage != nil:
		return fmt.Sprintf("%.1f%%", *d.AlcoholPercentage)
	case d.CaffeineMg != nil:
		return fmt.Sprintf("%.0f mg", *d.CaffeineMg)
	default:
		return "-"
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogSeedCmd, catalogPushCmd, catalogClearCmd)
	catalogListCmd.Flags().StringVar(&catalogCategory, "category", "", "Filter by category: alcohol or caffeine")
	catalogListCmd.Flags().BoolVar(&catalogRefresh, "refresh", false, "Refresh from the remote catalog first")
}
