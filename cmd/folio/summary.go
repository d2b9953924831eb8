package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/eringen/folio"
)

const maxTitleWidth = 40

// writeSummary prints one row per document, newest first within each
// collection, followed by totals.
func writeSummary(w io.Writer, cfg folio.Config, coll *folio.Collection) {
	rows := [][]string{{"COLLECTION", "SLUG", "TITLE", "PUBLISHED", "READING"}}
	for _, col := range cfg.Collections {
		for _, d := range folio.SortByPublishedDescending(coll.OfType(col.Name)) {
			rows = append(rows, []string{
				d.Collection,
				d.Slug,
				runewidth.Truncate(d.Title, maxTitleWidth, "..."),
				folio.FormatDate(d.PublishedOn),
				d.ReadingTime,
			})
		}
	}
	for _, line := range formatTable(rows) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%d documents in %d collections, %d skipped\n",
		coll.Len(), len(cfg.Collections), len(coll.Warnings()))
}

// formatTable pads every column to its widest cell, measured in display
// columns so wide runes line up.
func formatTable(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}
