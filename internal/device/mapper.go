package device

import (
	"strconv"
	"strings"

	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
)

// RawDeviceSample is the JSON payload the Arduino panel emits on the
// hardware deploy button. Every numeric field arrives as a string because
// the firmware serializes potentiometer readings as text.
type RawDeviceSample struct {
	Friendliness string `json:"friendliness"`
	Logic        string `json:"logic"`
	Humour       string `json:"humour"`
	Sarcasm      string `json:"sarcasm"`
	Openness     string `json:"openness"`
	Verbosity    string `json:"verbosity"`
	EmojiAmount  string `json:"emojiAmount"`
	Stance       string `json:"stance"`
	Topic        string `json:"topic"`
	Platform     string `json:"platform"`
}

// parseTrait parses a string-encoded trait value, substituting the neutral
// midpoint for anything missing or unparseable, and clamps to [0,100].
func parseTrait(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return personality.NeutralValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return personality.NeutralValue
	}
	return personality.Clamp(v)
}

// invert maps an external "positive" sensor reading onto the internal
// bipolar axis. The panel's axes read friendliness up; internally the axis
// runs friendly (0) to aggressive (100), so internal = 100 - external.
func invert(external int) int {
	return personality.Clamp(100 - external)
}

// StanceBucket maps a raw 0-100 stance dial value onto one of the five
// ladder rungs: bucket = min(4, value/20).
func StanceBucket(value int) int {
	bucket := personality.Clamp(value) / 20
	if bucket > 4 {
		bucket = 4
	}
	return bucket
}

// MapDeviceInputToConfig converts a raw device sample into a round-ready
// BotConfig. Pure and deterministic: the same sample always yields the same
// config.
func MapDeviceInputToConfig(raw RawDeviceSample) personality.BotConfig {
	friendliness := parseTrait(raw.Friendliness)
	logic := parseTrait(raw.Logic)
	humour := parseTrait(raw.Humour)
	sarcasm := parseTrait(raw.Sarcasm)
	openness := parseTrait(raw.Openness)
	verbosity := parseTrait(raw.Verbosity)
	emoji := parseTrait(raw.EmojiAmount)
	stanceValue := parseTrait(raw.Stance)

	// Internal bipolar axes. Verbosity and emoji map directly, everything
	// else is inverted.
	friendlyAggressive := invert(friendliness)
	logicalIllogical := invert(logic)
	humorSerious := invert(humour)
	sarcasmDirect := invert(sarcasm)
	openClosed := invert(openness)
	minimalVerbose := personality.Clamp(verbosity)

	topic, found := LookupTopic(raw.Topic)
	if !found {
		topic = defaultTopic()
	}
	stance := topic.StanceLadder[StanceBucket(stanceValue)]

	category := types.CategoryCon
	if stanceValue >= 50 {
		category = types.CategoryPro
	}

	// Stance strength is distance from the dial's midpoint, rescaled to
	// the full range so a hard-left or hard-right dial reads as 100.
	stanceStrength := personality.Clamp(abs(stanceValue-50) * 2)

	cfg := personality.BotConfig{
		Topic:  topic.Name,
		Stance: stance,
		Opinion: personality.PersonalityConfig{
			StanceStrength: stanceStrength,
			Positivity:     friendliness,
			Category:       category,
			Theme:          topic.Theme,
		},
		Style: deriveStyle(friendlyAggressive, logicalIllogical, humorSerious,
			sarcasmDirect, openClosed, minimalVerbose, emoji),
		Axes: personality.AxisValues{
			Friendly:    100 - friendlyAggressive,
			Aggressive:  friendlyAggressive,
			Logical:     100 - logicalIllogical,
			Illogical:   logicalIllogical,
			Humor:       100 - humorSerious,
			Serious:     humorSerious,
			Sarcasm:     100 - sarcasmDirect,
			Direct:      sarcasmDirect,
			OpenMinded:  100 - openClosed,
			ClosedMind:  openClosed,
			Minimal:     100 - minimalVerbose,
			Verbose:     minimalVerbose,
			EmojiAmount: emoji,
		},
	}

	if platform, ok := types.PlatformFromCodename(raw.Platform); ok {
		cfg.Platform = platform
	}

	return cfg
}

// deriveStyle expands the seven panel axes into the twelve-trait style
// model the rendering engine consumes. The expansion is fixed so hardware
// input stays reproducible.
func deriveStyle(friendlyAggressive, logicalIllogical, humorSerious,
	sarcasmDirect, openClosed, minimalVerbose, emoji int) personality.StyleConfig {

	logic := 100 - logicalIllogical
	humour := 100 - humorSerious
	scholarly := (logic + minimalVerbose) / 2

	return personality.StyleConfig{
		Sarcasm:            100 - sarcasmDirect,
		Dismissiveness:     friendlyAggressive,
		Logic:              logic,
		BulletPoints:       logic,
		EmotionalIntensity: emoji,
		DramaticFlair:      humour,
		PostLength:         100 - minimalVerbose,
		MemeStyle:          humour,
		PseudoIntellectual: scholarly,
		Jargon:             scholarly,
		Supportiveness:     100 - friendlyAggressive,
		Agreeableness:      100 - openClosed,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
