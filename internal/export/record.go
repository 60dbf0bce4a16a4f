package export

import (
	"time"

	"github.com/neo/botspotter_backend/internal/personality"
)

// Record is one completed round's log entry. Its fields mirror the CSV
// schema column for column; the HTTP sink posts the same shape as JSON.
type Record struct {
	Date                time.Time `json:"date"`
	PlayerCode          string    `json:"player_code"`
	Score               int       `json:"score"`
	Won                 bool      `json:"won"`
	TimeUsed            int       `json:"time_used"`
	Topic               string    `json:"topic"`
	Stance              string    `json:"stance"`
	Friendly            int       `json:"friendly"`
	Aggressive          int       `json:"aggressive"`
	Logical             int       `json:"logical"`
	Illogical           int       `json:"illogical"`
	Humor               int       `json:"humor"`
	Serious             int       `json:"serious"`
	Sarcasm             int       `json:"sarcasm"`
	Direct              int       `json:"direct"`
	OpenMinded          int       `json:"open_minded"`
	ClosedMinded        int       `json:"closed_minded"`
	Minimal             int       `json:"minimal"`
	Verbose             int       `json:"verbose"`
	EmojiAmount         int       `json:"emoji_amount"`
	BotsFound           int       `json:"bots_found"`
	HumansMisidentified int       `json:"humans_misidentified"`
	TotalBots           int       `json:"total_bots"`
}

// NewRecord assembles a log record from a finished round's pieces.
func NewRecord(playerCode string, score int, won bool, timeUsed int, cfg personality.BotConfig, botsFound, humansMisidentified, totalBots int) Record {
	axes := cfg.Axes
	return Record{
		Date:                time.Now(),
		PlayerCode:          playerCode,
		Score:               score,
		Won:                 won,
		TimeUsed:            timeUsed,
		Topic:               cfg.Topic,
		Stance:              cfg.Stance,
		Friendly:            axes.Friendly,
		Aggressive:          axes.Aggressive,
		Logical:             axes.Logical,
		Illogical:           axes.Illogical,
		Humor:               axes.Humor,
		Serious:             axes.Serious,
		Sarcasm:             axes.Sarcasm,
		Direct:              axes.Direct,
		OpenMinded:          axes.OpenMinded,
		ClosedMinded:        axes.ClosedMind,
		Minimal:             axes.Minimal,
		Verbose:             axes.Verbose,
		EmojiAmount:         axes.EmojiAmount,
		BotsFound:           botsFound,
		HumansMisidentified: humansMisidentified,
		TotalBots:           totalBots,
	}
}
