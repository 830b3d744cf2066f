package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cityforest/pkg/forest"
	"github.com/matzehuels/cityforest/pkg/stats"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCity    = lipgloss.Color("36")  // city names, counts
	colorOK      = lipgloss.Color("35")  // finished builds, cache hits
	colorShort   = lipgloss.Color("220") // saturated cities, isolated vertices
	colorFail    = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240") // distances, paths, bridge tags
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle renders a city heading.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCity)

	// StyleHighlight renders a city name inline.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCity)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleNumber renders counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCity)

	// StyleWarning renders shortfalls.
	StyleWarning = lipgloss.NewStyle().Foreground(colorShort)
)

var (
	styleMarkOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMarkFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleMarkShort   = lipgloss.NewStyle().Foreground(colorShort)
	styleMarkInfo    = lipgloss.NewStyle().Foreground(colorLabel)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCity)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
)

const (
	markOK    = "✓"
	markFail  = "✗"
	markShort = "!"
	markInfo  = "›"
	markItem  = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleMarkOK.Render(markOK) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleMarkFail.Render(markFail) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleMarkShort.Render(markShort) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleMarkInfo.Render(markInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an indented list item, usually a written path.
func printFile(item string) {
	fmt.Println("  " + StyleDim.Render(markItem) + " " + item)
}

// printKeyValue prints value behind a fixed-width label.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + value)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }

// =============================================================================
// Network Output
// =============================================================================

// formatMiles renders a distance the way every command shows it.
func formatMiles(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

// printConnection prints one connection of a city: the neighbor, the length,
// and the tag when it is not the builder's default.
func printConnection(to string, miles float64, tag string) {
	line := to + " " + StyleDim.Render("("+formatMiles(miles)+")")
	if tag != "" && tag != forest.DefaultTag {
		line += " " + StyleDim.Render(tag)
	}
	printFile(line)
}

// printStats prints a one-line network summary and whether it came from the
// cache.
func printStats(s stats.Summary, cached bool) {
	parts := []string{
		fmt.Sprintf("%d cities", s.Vertices),
		fmt.Sprintf("%d connections", s.Connections),
	}
	if s.Components > 1 {
		parts = append(parts, fmt.Sprintf("%d components", s.Components))
	}
	if s.Connections > 0 {
		parts = append(parts, formatMiles(s.Weights.Total))
	}

	source := styleMarkInfo.Render("fresh")
	if cached {
		source = styleMarkOK.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")) + sep + source)
}
