package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ctfwatch/config"
)

var trackedCmd = &cobra.Command{
	Use:   "tracked",
	Short: "List events that have already been alerted on",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cachePath != "" {
			cfg.CacheFile = cachePath
		}
		logger := config.NewLogger()

		store, closeStore, err := newStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		recs, err := store.All(cmd.Context())
		if err != nil {
			return err
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tSTARTS\tREMINDED\tCHECKED")
		for _, rec := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
				rec.ID, rec.Slug,
				rec.StartsAt.Format("2006-01-02 15:04"),
				rec.ReminderSent,
				rec.LastChecked.Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}
