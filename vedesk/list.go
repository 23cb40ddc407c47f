package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"rhystmorgan/veDesk/internal/utils"
)

var headerColour = color.New(color.Bold, color.FgCyan)

func newContactsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"c"},
		Short:   "List contacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := utils.ParseExportFormat(format)
			if err != nil {
				return err
			}

			snap := a.session.Snapshot()
			if f != utils.FormatTable {
				return utils.ExportContacts(cmd.OutOrStdout(), snap.Contacts, f, time.Now())
			}

			tbl := newTable("ID", "NAME", "TITLE", "EMAIL", "PHONE", "MEETINGS")
			for _, c := range snap.Contacts {
				tbl.AddRow(c.ID, c.Name, c.Title, c.Email, c.Phone, strconv.Itoa(len(snap.MeetingsFor(c.ID))))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, json or csv")
	return cmd
}

func newMeetingsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "meetings",
		Aliases: []string{"m"},
		Short:   "List meetings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := utils.ParseExportFormat(format)
			if err != nil {
				return err
			}

			snap := a.session.Snapshot()
			if f != utils.FormatTable {
				return utils.ExportMeetings(cmd.OutOrStdout(), snap.Meetings, f, time.Now())
			}

			tbl := newTable("ID", "TITLE", "STARTS", "LOCATION", "ATTENDEES")
			for _, m := range snap.Meetings {
				tbl.AddRow(m.ID, m.Title, utils.FormatShortTime(m.StartsAt), m.Location,
					utils.FormatAttendeeCount(len(snap.ResolveAttendees(m))))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, json or csv")
	return cmd
}

func newTable(headers ...string) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = headerColour.Sprint(h)
	}
	tbl.AddRow(row...)
	return tbl
}
