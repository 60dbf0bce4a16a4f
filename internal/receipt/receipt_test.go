package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRenderContainsAllResultFields(t *testing.T) {
	out := Render(Data{
		PlayerCode:   "ABC",
		CorrectBots:  7,
		TotalBots:    8,
		WrongGuesses: 2,
		TotalHumans:  12,
		Score:        19331,
		PrintedAt:    time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	})

	assert.Contains(t, out, "ABC")
	assert.Contains(t, out, "7/8")
	assert.Contains(t, out, "2/12")
	assert.Contains(t, out, "19331")
	assert.Contains(t, out, "2025-06-01 14:30")
	// 7/8 = 87.5% rounds to 88%, grade A
	assert.Contains(t, out, "88%")
	assert.Contains(t, out, "GRADE")
	assert.Contains(t, out, "A")
}

func TestRenderWithBotConfig(t *testing.T) {
	cfg := personality.BotConfig{
		Topic:    "electric cars",
		Stance:   "Everyone should switch to electric cars now",
		Platform: types.PlatformYouTube,
	}

	out := Render(Data{PlayerCode: "XYZ", Config: &cfg})
	assert.Contains(t, out, "electric cars")
	assert.Contains(t, out, "youtube")
	assert.Contains(t, out, "STANCE:")
}

func TestRenderWithoutConfigOmitsBotSection(t *testing.T) {
	out := Render(Data{PlayerCode: "XYZ"})
	assert.NotContains(t, out, "your bot")
}

func TestRenderLinesFitPrinterWidth(t *testing.T) {
	cfg := personality.BotConfig{
		Topic:  "social media regulation",
		Stance: "Strict regulation of social media is long overdue and everyone knows it",
	}
	out := Render(Data{PlayerCode: "AAA", Config: &cfg})

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 40, "line too wide: %q", line)
	}
}

func TestRenderZeroBotsGradesD(t *testing.T) {
	out := Render(Data{PlayerCode: "AAA", CorrectBots: 0, TotalBots: 0})
	assert.Contains(t, out, "0%")
}
