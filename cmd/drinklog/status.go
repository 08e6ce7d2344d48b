package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current BAC and caffeine estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			out := cmd.OutOrStdout()
			alc := a.ledger.AlcoholStatus()
			caf := a.ledger.CaffeineStatus()

			fmt.Fprintf(out, "BAC: %.2f‰ (%s)\n", alc.BAC, alc.Level)
			fmt.Fprintf(out, "Alcohol: %.1f of %.0f standard drinks (%s)\n", alc.StandardDrinks, alc.DailyLimit, alc.LimitLevel)
			if alc.SoberAt != nil {
				fmt.Fprintf(out, "Sober at: %s\n", alc.SoberAt.Local().Format(time.Kitchen))
			} else {
				fmt.Fprintln(out, "Sober at: now")
			}

			fmt.Fprintf(out, "Caffeine: %.0f mg in body, %.0f of %.0f mg today (%s)\n", caf.LevelMg, caf.TotalMg, caf.DailyLimitMg, caf.LimitLevel)
			if caf.CleanAt != nil {
				fmt.Fprintf(out, "Clean at: %s\n", caf.CleanAt.Local().Format(time.Kitchen))
			} else {
				fmt.Fprintln(out, "Clean at: now")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
