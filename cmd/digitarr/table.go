package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/AquaHorizonGaming/digitarr/internal/dispatch"
	"github.com/AquaHorizonGaming/digitarr/internal/pipeline"
)

func renderSummaryTable(summary pipeline.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Released", "Rating", "Overseerr", "Riven"})

	for _, rel := range summary.Releases {
		sinks := summary.Results[rel.Key()]
		tw.AppendRow(table.Row{
			rel.Title,
			rel.ReleaseDate,
			rel.VoteAverage,
			sinkMark(sinks, dispatch.SinkOverseerr),
			sinkMark(sinks, dispatch.SinkRiven),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignCenter},
		{Number: 5, Align: text.AlignCenter},
	})

	return tw.Render()
}

func sinkMark(sinks map[string]bool, sink string) string {
	ok, submitted := sinks[sink]
	switch {
	case !submitted:
		return "-"
	case ok:
		return "✓"
	default:
		return "✗"
	}
}
