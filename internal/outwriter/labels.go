package outwriter

import (
	"github.com/fatih/color"
	"github.com/huangsam/secpulse/schema"
)

// Colors for status labels and ranks in table output.
var (
	excellentColor = color.New(color.FgGreen)
	goodColor      = color.New(color.FgCyan)
	fairColor      = color.New(color.FgYellow)
	poorColor      = color.New(color.FgRed)
	noDataColor    = color.New(color.FgHiBlack)
)

// colorStatus returns the status label colored for console output when
// colors are enabled, plain text otherwise.
func colorStatus(label schema.StatusLabel, useColors bool) string {
	text := string(label)
	if !useColors {
		return text
	}
	switch label {
	case schema.ExcellentStatus:
		return excellentColor.Sprint(text)
	case schema.GoodStatus:
		return goodColor.Sprint(text)
	case schema.FairStatus:
		return fairColor.Sprint(text)
	case schema.PoorStatus:
		return poorColor.Sprint(text)
	default: // N/A
		return noDataColor.Sprint(text)
	}
}

// colorRank returns the rank letter colored for console output.
func colorRank(rank schema.Rank, useColors bool) string {
	text := string(rank)
	if !useColors {
		return text
	}
	switch rank {
	case schema.RankS, schema.RankA:
		return excellentColor.Sprint(text)
	case schema.RankB, schema.RankC:
		return fairColor.Sprint(text)
	default: // D, E, F
		return poorColor.Sprint(text)
	}
}

// colorSeverity returns the recommendation severity colored for console output.
func colorSeverity(sev schema.Severity, useColors bool) string {
	text := string(sev)
	if !useColors {
		return text
	}
	switch sev {
	case schema.HighSeverity:
		return poorColor.Sprint(text)
	case schema.MediumSeverity:
		return fairColor.Sprint(text)
	default:
		return goodColor.Sprint(text)
	}
}
