package cli

import (
	"errors"
	"fmt"
	"time"

	"hospital-portal/core/incidents"

	"github.com/spf13/cobra"
)

func incidentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "incident",
		Aliases: []string{"incidents"},
		Short:   "File and review incident reports",
	}
	cmd.AddCommand(
		incidentListCommand(a),
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one incident report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				report, err := a.client().GetIncident(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.printReport(report)
			},
		},
		incidentSubmitCommand(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one incident report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				res, err := a.client().DeleteIncident(cmd.Context(), id)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(res)
				}
				_, err = fmt.Fprintf(a.out, "deleted incident report %d\n", res.DeletedID)
				return err
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Count all reports, this month's, and high-severity ones",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := a.client().ListIncidents(cmd.Context())
				if err != nil {
					return err
				}
				return a.printSummary(incidents.Summarize(items, time.Now().In(a.cfg.Location())))
			},
		},
		incidentDraftCommand(a),
	)
	return cmd
}

func incidentListCommand(a *app) *cobra.Command {
	var (
		keyword string
		filter  incidents.Filter
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports, optionally searched and then narrowed",
		Long: `List fetches reports from the server, newest first.

--q runs a server-side substring search over patient name, department and
location. --department and --impact-level then narrow that result locally
and must match exactly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client().SearchIncidents(cmd.Context(), keyword)
			if err != nil {
				return err
			}
			if !filter.Empty() {
				items = incidents.Narrow(items, filter)
			}
			return a.printReports(items)
		},
	}
	cmd.Flags().StringVar(&keyword, "q", "", "search keyword")
	cmd.Flags().StringVar(&filter.Department, "department", "", "only this department")
	cmd.Flags().StringVar(&filter.ImpactLevel, "impact-level", "", "only this impact level")
	return cmd
}

// incidentFields binds one flag per report field. Only flags the user set
// are applied, so they can layer over a saved draft.
type incidentFields struct {
	in              incidents.Input
	experienceYears int64
	impactLevel     string
}

func (f *incidentFields) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.in.PatientID, "patient-id", "", "patient id")
	fl.StringVar(&f.in.PatientName, "patient-name", "", "patient name")
	fl.StringVar(&f.in.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	fl.StringVar(&f.in.Gender, "gender", "", "patient gender")
	fl.StringVar(&f.in.ReporterJob, "reporter-job", "", "reporter occupation")
	fl.StringVar(&f.in.Department, "department", "", "department")
	fl.Int64Var(&f.experienceYears, "experience-years", 0, "reporter years of experience")
	fl.StringVar(&f.in.ReporterType, "reporter-type", "", "reporter type")
	fl.StringVar(&f.in.IncidentDatetime, "incident-datetime", "", "when it happened (YYYY-MM-DDTHH:MM)")
	fl.StringVar(&f.in.IncidentLocation, "incident-location", "", "where it happened")
	fl.StringVar(&f.in.IncidentType, "incident-type", "", "incident type")
	fl.StringVar(&f.in.IncidentSituation, "incident-situation", "", "what happened")
	fl.StringVar(&f.in.ResponseAction, "response-action", "", "response taken")
	fl.StringVar(&f.in.CauseFactor, "cause-factor", "", "contributing factors")
	fl.StringVar(&f.impactLevel, "impact-level", "", "impact level (1, 2, 3a, 3b, 4, 5)")
}

func (f *incidentFields) applyTo(cmd *cobra.Command, dst *incidents.Input) {
	fl := cmd.Flags()
	set := func(name string, target *string, value string) {
		if fl.Changed(name) {
			*target = value
		}
	}
	set("patient-id", &dst.PatientID, f.in.PatientID)
	set("patient-name", &dst.PatientName, f.in.PatientName)
	set("birth-date", &dst.BirthDate, f.in.BirthDate)
	set("gender", &dst.Gender, f.in.Gender)
	set("reporter-job", &dst.ReporterJob, f.in.ReporterJob)
	set("department", &dst.Department, f.in.Department)
	set("reporter-type", &dst.ReporterType, f.in.ReporterType)
	set("incident-datetime", &dst.IncidentDatetime, f.in.IncidentDatetime)
	set("incident-location", &dst.IncidentLocation, f.in.IncidentLocation)
	set("incident-type", &dst.IncidentType, f.in.IncidentType)
	set("incident-situation", &dst.IncidentSituation, f.in.IncidentSituation)
	set("response-action", &dst.ResponseAction, f.in.ResponseAction)
	set("cause-factor", &dst.CauseFactor, f.in.CauseFactor)
	if fl.Changed("experience-years") {
		v := f.experienceYears
		dst.ExperienceYears = &v
	}
	if fl.Changed("impact-level") {
		dst.ImpactLevel = incidents.ImpactLevel(f.impactLevel)
	}
}

func incidentSubmitCommand(a *app) *cobra.Command {
	var (
		fields    incidentFields
		fromDraft bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "File a new incident report",
		Long: `Submit sends a report to the server. With --from-draft the saved draft
is used as the starting point and any field flags override it; the draft
is cleared once the server accepts the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in incidents.Input
			drafts := a.drafts()
			if fromDraft {
				draft, ok, err := drafts.Load()
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("no saved draft")
				}
				in = draft
			}
			fields.applyTo(cmd, &in)
			report, err := a.client().AddIncident(cmd.Context(), in)
			if err != nil {
				return err
			}
			if fromDraft {
				if err := drafts.Clear(); err != nil {
					a.logger.Warnf("report %d filed but draft not cleared: %v", report.ID, err)
				}
			}
			return a.printReport(report)
		},
	}
	fields.bind(cmd)
	cmd.Flags().BoolVar(&fromDraft, "from-draft", false, "start from the saved draft and clear it on success")
	return cmd
}

func incidentDraftCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Keep an unfinished report locally",
	}

	var fields incidentFields
	save := &cobra.Command{
		Use:   "save",
		Short: "Save or update the local draft",
		Long:  `Save merges the given field flags into the existing draft, if any.
A draft needs at least a patient name or a situation.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts := a.drafts()
			in, _, err := drafts.Load()
			if err != nil {
				return err
			}
			fields.applyTo(cmd, &in)
			if !in.HasContent() {
				return errors.New("nothing to save: set --patient-name or --incident-situation")
			}
			if err := drafts.Save(in); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "draft saved to %s\n", drafts.Path())
			return err
		},
	}
	fields.bind(save)

	cmd.AddCommand(
		save,
		&cobra.Command{
			Use:   "show",
			Short: "Print the saved draft",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				in, ok, err := a.drafts().Load()
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(a.out, "No saved draft.")
					return err
				}
				return a.printJSON(in)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Discard the saved draft",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.drafts().Clear(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(a.out, "draft cleared")
				return err
			},
		},
	)
	return cmd
}
