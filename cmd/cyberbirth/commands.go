package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/domain"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var req domain.CreateBirthdayRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a birthday",
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			b, err := a.svc.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", b.Name, b.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "person's name")
	cmd.Flags().StringVar(&req.Date, "date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Relationship, "relationship", "", "relationship (default \"Friend\")")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List birthdays, soonest first",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			entries := a.svc.List(cmd.Context())
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no birthdays recorded")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tRELATIONSHIP\tNEXT\tDAYS\tTURNS")
			for _, e := range entries {
				days := strconv.Itoa(e.Occurrence.DaysRemaining)
				if e.Occurrence.IsToday {
					days = "TODAY"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
					e.Birthday.ID, e.Birthday.Name, e.Birthday.Relationship,
					e.Occurrence.Next, days, e.Occurrence.Age)
			}
			return tw.Flush()
		}),
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a birthday",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			removed, err := a.svc.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d record(s)\n", removed)
			return nil
		}),
	}
}

func newWishCmd(opts *rootOptions) *cobra.Command {
	var tone string

	cmd := &cobra.Command{
		Use:   "wish <id>",
		Short: "Generate a birthday wish and gift ideas",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			t, err := wishes.ParseTone(tone)
			if err != nil {
				return err
			}
			res, err := a.svc.GenerateWish(cmd.Context(), args[0], t)
			if err != nil {
				return err
			}
			printWish(cmd.OutOrStdout(), res)
			return nil
		}),
	}
	cmd.Flags().StringVar(&tone, "tone", string(wishes.ToneCyberpunk), "funny, sincere or cyberpunk")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			st := a.svc.Stats(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "total: %d\ntoday: %d\nthis week: %d\n", st.Total, st.Today, st.Upcoming)
			return nil
		}),
	}
}
