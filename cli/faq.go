package cli

import (
	"fmt"
	"strconv"

	"hospital-portal/core/faqs"

	"github.com/spf13/cobra"
)

func faqCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Browse and edit the FAQ knowledge base",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every FAQ, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := a.client().ListFAQs(cmd.Context())
				if err != nil {
					return err
				}
				return a.printFAQs(items)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one FAQ",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				faq, err := a.client().GetFAQ(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.printFAQ(faq)
			},
		},
		&cobra.Command{
			Use:   "search [keyword]",
			Short: "Substring search over question, answer and category",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := a.client().SearchFAQs(cmd.Context(), firstArg(args))
				if err != nil {
					return err
				}
				return a.printFAQs(items)
			},
		},
		&cobra.Command{
			Use:   "category [name]",
			Short: "List FAQs in one category",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := a.client().FAQsByCategory(cmd.Context(), firstArg(args))
				if err != nil {
					return err
				}
				return a.printFAQs(items)
			},
		},
		faqAddCommand(a),
		faqUpdateCommand(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one FAQ",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				res, err := a.client().DeleteFAQ(cmd.Context(), id)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(res)
				}
				_, err = fmt.Fprintf(a.out, "deleted faq %d\n", res.DeletedID)
				return err
			},
		},
	)
	return cmd
}

func bindFAQFlags(cmd *cobra.Command, in *faqs.Input) {
	cmd.Flags().StringVar(&in.Category, "category", "", "category")
	cmd.Flags().StringVar(&in.Question, "question", "", "question text")
	cmd.Flags().StringVar(&in.Answer, "answer", "", "answer text")
}

func faqAddCommand(a *app) *cobra.Command {
	var in faqs.Input
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an FAQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			faq, err := a.client().AddFAQ(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.printFAQ(faq)
		},
	}
	bindFAQFlags(cmd, &in)
	return cmd
}

func faqUpdateCommand(a *app) *cobra.Command {
	var in faqs.Input
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an FAQ's category, question and answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			faq, err := a.client().UpdateFAQ(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return a.printFAQ(faq)
		},
	}
	bindFAQFlags(cmd, &in)
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
