package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"hospital-portal/core/appbootstrap"
	"hospital-portal/core/store"

	"github.com/spf13/cobra"
)

func serveCommand(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.ListenAddr = listen
			}
			return appbootstrap.Run(cmd.Context(), a.cfg, a.logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides listen_addr)")
	return cmd
}

func migrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := appbootstrap.OpenStore(cmd.Context(), a.cfg, a.logger, false)
			if err != nil {
				return err
			}
			defer db.Close()
			version, err := store.SchemaVersion(cmd.Context(), db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "schema at version %d\n", version)
			return err
		},
	}
}

func seedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter FAQs into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := appbootstrap.OpenStore(cmd.Context(), a.cfg, a.logger, false)
			if err != nil {
				return err
			}
			defer db.Close()
			n, err := store.SeedFAQs(cmd.Context(), db, a.logger)
			if err != nil {
				return err
			}
			if n == 0 {
				_, err = fmt.Fprintln(a.out, "faqs already present, nothing seeded")
				return err
			}
			_, err = fmt.Fprintf(a.out, "seeded %d faqs\n", n)
			return err
		},
	}
}

func checkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show tables, row counts and the incident_reports layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := appbootstrap.OpenStore(cmd.Context(), a.cfg, a.logger, false)
			if err != nil {
				return err
			}
			defer db.Close()
			info, err := store.Inspect(cmd.Context(), db)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "dialect\t%s\n", info.Dialect)
			fmt.Fprintf(w, "schema version\t%d\n", info.SchemaVersion)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "TABLE\tROWS")
			for _, c := range info.Counts {
				fmt.Fprintf(w, "%s\t%d\n", c.Table, c.Rows)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "COLUMN\tTYPE\tNOT NULL\tPK")
			for _, col := range info.IncidentSchema {
				fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", col.Name, col.Type, col.NotNull, col.PrimaryKey)
			}
			return w.Flush()
		},
	}
}
