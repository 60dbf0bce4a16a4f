package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/scoring"
)

const lineWidth = 32

// Data carries everything a printed receipt shows. The fields are exactly
// the scoring engine's round-end outputs.
type Data struct {
	PlayerCode   string
	CorrectBots  int
	TotalBots    int
	WrongGuesses int
	TotalHumans  int
	Score        int
	Config       *personality.BotConfig // optional
	PrintedAt    time.Time
}

// Render formats a plain-text receipt for the kiosk's thermal printer.
// Pure formatting; no side effects.
func Render(d Data) string {
	if d.PrintedAt.IsZero() {
		d.PrintedAt = time.Now()
	}

	accuracy := scoring.Accuracy(d.CorrectBots, d.TotalBots)
	grade := scoring.DefaultGradeCutoffs().GradeFor(accuracy)

	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center("BOT SPOTTER") + "\n")
	b.WriteString(center("official result") + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(row("PLAYER", d.PlayerCode) + "\n")
	b.WriteString(row("DATE", d.PrintedAt.Format("2006-01-02 15:04")) + "\n")
	b.WriteString(thin + "\n")
	b.WriteString(row("BOTS FOUND", fmt.Sprintf("%d/%d", d.CorrectBots, d.TotalBots)) + "\n")
	b.WriteString(row("HUMANS ACCUSED", fmt.Sprintf("%d/%d", d.WrongGuesses, d.TotalHumans)) + "\n")
	b.WriteString(row("ACCURACY", fmt.Sprintf("%.0f%%", accuracy)) + "\n")
	b.WriteString(row("GRADE", string(grade)) + "\n")
	b.WriteString(thin + "\n")
	b.WriteString(row("SCORE", fmt.Sprintf("%d", d.Score)) + "\n")

	if d.Config != nil {
		b.WriteString(thin + "\n")
		b.WriteString(center("your bot") + "\n")
		b.WriteString(row("TOPIC", d.Config.Topic) + "\n")
		b.WriteString(wrap("STANCE: "+d.Config.Stance) + "\n")
		if d.Config.Platform != "" {
			b.WriteString(row("PLATFORM", d.Config.Platform.String()) + "\n")
		}
	}

	b.WriteString(rule + "\n")
	b.WriteString(center("thanks for playing") + "\n")
	b.WriteString(rule + "\n")

	return b.String()
}

// center pads a line to the printer width.
func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	pad := (lineWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// row right-aligns a value against its label.
func row(label, value string) string {
	gap := lineWidth - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

// wrap breaks a long line at word boundaries to the printer width.
func wrap(s string) string {
	words := strings.Fields(s)
	var lines []string
	var current string
	for _, w := range words {
		if current == "" {
			current = w
			continue
		}
		if len(current)+1+len(w) > lineWidth {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n")
}
