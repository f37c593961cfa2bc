package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/chaos-recipe-cli/internal/application"
	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

const (
	// DefaultTargetSets is how many full sets a bar shows as complete.
	DefaultTargetSets = 10

	labelWidth = 18
	barWidth   = 20

	normalStashCells = 12
	doubleStashCells = 24
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
	TargetSets int
}

var typeLabels = map[domain.ItemType]string{
	domain.ItemTypeWeapon1HOrShield: "One-hand/Shield",
	domain.ItemTypeWeapon2H:         "Two-hand",
	domain.ItemTypeBody:             "Body",
	domain.ItemTypeHelmet:           "Helmet",
	domain.ItemTypeGloves:           "Gloves",
	domain.ItemTypeBelt:             "Belt",
	domain.ItemTypeBoots:            "Boots",
	domain.ItemTypeRing:             "Ring",
	domain.ItemTypeAmulet:           "Amulet",
}

func typeLabel(itemType domain.ItemType) string {
	if label, ok := typeLabels[itemType]; ok {
		return label
	}
	return string(itemType)
}

// perSet is how many items of a type one bundle consumes.
func perSet(itemType domain.ItemType) int {
	switch itemType {
	case domain.ItemTypeWeapon1HOrShield, domain.ItemTypeRing:
		return 2
	default:
		return 1
	}
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Chaos Recipe Stash"),
		headerLine(status, opts, s),
	}

	if status.Refreshes == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No stash snapshot fetched yet.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	target := opts.TargetSets
	if target <= 0 {
		target = DefaultTargetSets
	}

	rows := []string{s.header.Render(fmt.Sprintf("--- Type: (ilvl<%d, ilvl>=%d) ---", domain.HighTierItemLevel, domain.HighTierItemLevel))}
	for _, itemType := range domain.DisplayOrder {
		rows = append(rows, typeLine(itemType, status.Inventory, target, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	lines = append(lines, s.section.Render(s.total.Render(fmt.Sprintf("Total bundles: %d", status.TotalBundles))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(status application.Status, opts RenderOptions, s styles) string {
	line := s.header.Render(fmt.Sprintf("bundles: %d · refreshes: %d · %s",
		status.TotalBundles, status.Refreshes, formatUpdated(status.UpdatedAt, opts.Now)))

	if isStale(status.UpdatedAt, opts) {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func isStale(updatedAt time.Time, opts RenderOptions) bool {
	if updatedAt.IsZero() || opts.Now.IsZero() || opts.StaleAfter <= 0 {
		return false
	}
	return opts.Now.Sub(updatedAt) > opts.StaleAfter
}

func typeLine(itemType domain.ItemType, inv domain.Inventory, targetSets int, s styles) string {
	low, high := inv.Counts(itemType)
	need := targetSets * perSet(itemType)
	percent := 100 * float64(low+high) / float64(need)

	countColor := interpolateColor(percent, 0, 100)
	counts := lipgloss.NewStyle().Foreground(countColor).Render(fmt.Sprintf("%d/%d", low+high, need))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.typeLabel.Render(typeLabel(itemType)),
		renderProgressBar(percent, barWidth, s),
		" ",
		s.low.Render(fmt.Sprintf("(%d", low)),
		s.barTextFaint.Render(", "),
		s.high.Render(fmt.Sprintf("%d)", high)),
		" ",
		counts,
	)
}

func renderBundleView(result application.BundleResult, s styles) string {
	if result.Empty() {
		return s.empty.Render("No recipe available.")
	}

	cells := normalStashCells
	layout := "normal stash"
	if result.DoubleStash {
		cells = doubleStashCells
		layout = "quad stash"
	}

	lines := []string{
		s.title.Render(fmt.Sprintf("Bundle (%d items, %s)", len(result.Bundle), layout)),
	}

	slots := make([]string, 0, len(result.Bundle))
	for _, item := range result.Bundle {
		tierStyle := s.low
		if item.Tier() == domain.TierHigh {
			tierStyle = s.high
		}
		slots = append(slots, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.typeLabel.Render(typeLabel(item.Type)),
			s.slotMeta.Render(fmt.Sprintf("x=%-2d y=%-2d %dx%d ilvl %d ", item.X, item.Y, item.W, item.H, item.ItemLevel)),
			tierStyle.Render(item.Tier().String()),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, slots...)))
	lines = append(lines, s.section.Render(renderGrid(result.Bundle, cells, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderGrid marks every stash cell covered by a bundle item. Cells outside the tab are dropped.
func renderGrid(bundle domain.Bundle, cells int, s styles) string {
	used := make([][]bool, cells)
	for y := range used {
		used[y] = make([]bool, cells)
	}

	for _, item := range bundle {
		for y := max(item.Y, 0); y < min(item.Y+item.H, cells); y++ {
			for x := max(item.X, 0); x < min(item.X+item.W, cells); x++ {
				used[y][x] = true
			}
		}
	}

	rows := make([]string, 0, cells)
	for _, row := range used {
		var b strings.Builder
		for _, cell := range row {
			if cell {
				b.WriteString(s.cellUsed.Render("#"))
			} else {
				b.WriteString(s.cellFree.Render("."))
			}
		}
		rows = append(rows, b.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := clampPercent(percent) / 100.0
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatUpdated(updatedAt, now time.Time) string {
	if updatedAt.IsZero() {
		return "updated never"
	}
	if now.IsZero() {
		return "updated " + updatedAt.Format(time.RFC3339)
	}

	elapsed := now.Sub(updatedAt)
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("updated just now (%s)", updatedAt.Format("15:04"))
	case elapsed < time.Hour:
		minutes := int(elapsed.Minutes())
		return fmt.Sprintf("updated %d %s ago (%s)", minutes, plural(minutes, "minute"), updatedAt.Format("15:04"))
	default:
		hours := int(elapsed.Hours())
		return fmt.Sprintf("updated %d %s ago (%s)", hours, plural(hours, "hour"), updatedAt.Format("15:04 on 02 Jan"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, faded at min and bright at max.
	baseColor := 240.0
	targetColor := 255.0

	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
