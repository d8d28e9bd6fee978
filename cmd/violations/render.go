package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"parking-violations/internal/models"
	"parking-violations/internal/timefmt"
)

func statusLabel(resolved bool) string {
	if resolved {
		return "Resolved"
	}
	return "Unresolved"
}

func (app *application) renderList(list []models.Violation, search string) error {
	if len(list) == 0 {
		if strings.TrimSpace(search) != "" {
			_, err := fmt.Fprintln(app.out, "No violations found matching your search.")
			return err
		}
		_, err := fmt.Fprintln(app.out, "No violations found.")
		return err
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLATE\tSTATE\tLOCATION\tDATE\tSTATUS")
	for _, v := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Car.Plate, v.Car.State, v.Location,
			timefmt.FormatShortDate(v.Date, app.loc), statusLabel(v.Resolved))
	}
	return tw.Flush()
}

func (app *application) renderDetail(v models.Violation) error {
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "License Plate\t%s\n", v.Car.Plate)
	fmt.Fprintf(tw, "State\t%s\n", v.Car.State)
	fmt.Fprintf(tw, "Location\t%s\n", v.Location)
	fmt.Fprintf(tw, "Date & Time\t%s\n", timefmt.FormatDate(v.Date, app.loc))
	fmt.Fprintf(tw, "Status\t%s\n", statusLabel(v.Resolved))
	return tw.Flush()
}
