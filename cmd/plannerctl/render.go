package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/services"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func output(w io.Writer, v any, render func()) error {
	switch format := viper.GetString("output"); format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "", "table":
		render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderRedistribution(w io.Writer, r services.RedistributionResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Week", "Outcome", "Moved", "Modified days"})
	tw.AppendRow(table.Row{r.Week, r.Outcome, r.MovedJobs, strings.Join(r.ModifiedDays, ", ")})
	tw.Render()
	renderWarnings(w, r.Warnings)
}

func renderReset(w io.Writer, r commands.ResetResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Jobs reset", "Days reset", "Redistribution"})
	tw.AppendRow(table.Row{r.JobsReset, strings.Join(r.DaysReset, ", "), r.Redistribution.Status})
	tw.Render()
	renderWarnings(w, r.Warnings)

	switch r.Redistribution.Status {
	case commands.FollowUpCompleted:
		renderRedistribution(w, r.Redistribution.Result)
	case commands.FollowUpFailed:
		fmt.Fprintf(w, "redistribution failed: %v\n", r.Redistribution.Err)
	}
}

func renderReport(w io.Writer, r commands.AggregateReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Week", "Outcome", "Moved", "Error"})
	for _, week := range r.Weeks {
		if week.Err != nil {
			tw.AppendRow(table.Row{week.Week, "failed", 0, week.Err.Error()})
			continue
		}
		tw.AppendRow(table.Row{week.Week, week.Result.Outcome, week.Result.MovedJobs, ""})
	}
	tw.AppendFooter(table.Row{string(r.Kind), fmt.Sprintf("%d failed", r.Failed()), r.MovedJobs(), ""})
	tw.Render()
	renderWarnings(w, r.Warnings())
}

func renderCapacity(w io.Writer, p queries.GetWeekCapacityQueryResponse) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Day", "Workers", "Capacity", "Consumed", "Available", ""})
	for _, d := range p.Days {
		flag := ""
		switch {
		case !d.Eligible:
			flag = "no workers"
		case d.OverCapacity:
			flag = "over capacity"
		}
		tw.AppendRow(table.Row{
			d.Label,
			d.AvailableWorkers,
			d.TotalCapacity.StringFixed(2),
			d.ConsumedValue.StringFixed(2),
			d.Available.StringFixed(2),
			flag,
		})
	}
	tw.AppendFooter(table.Row{"Week " + p.WeekStart, "", p.TotalCapacity.StringFixed(2), "", "", ""})
	tw.Render()
}

func renderWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}
