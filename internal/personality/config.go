package personality

import (
	"fmt"
	"strings"

	"github.com/neo/botspotter_backend/internal/types"
)

// DominanceThreshold is the value a trait must exceed (strictly) to be
// considered expressed in rendered text. A trait at exactly the threshold
// is not dominant.
const DominanceThreshold = 60

// NeutralValue is substituted for missing or unparseable trait input.
const NeutralValue = 50

// Clamp limits a trait value to the valid [0,100] range.
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Dominant reports whether a trait value is strong enough to shape output.
func Dominant(v int) bool {
	return v > DominanceThreshold
}

// OrNeutral substitutes the neutral midpoint for a nil trait value and
// clamps everything else.
func OrNeutral(v *int) int {
	if v == nil {
		return NeutralValue
	}
	return Clamp(*v)
}

// PersonalityConfig is the opinion axis of a bot: how strongly it holds its
// stance, how positively it frames it, and what kind of opinion it is.
// Immutable once a round starts.
type PersonalityConfig struct {
	StanceStrength int            `json:"stanceStrength"`
	Positivity     int            `json:"positivity"`
	Category       types.Category `json:"category"`
	Theme          types.Theme    `json:"theme"`
}

// Normalize clamps the numeric fields and fills invalid enums with defaults.
func (p PersonalityConfig) Normalize() PersonalityConfig {
	p.StanceStrength = Clamp(p.StanceStrength)
	p.Positivity = Clamp(p.Positivity)
	if !p.Category.IsValid() {
		p.Category = types.CategoryPro
	}
	if !p.Theme.IsValid() {
		p.Theme = types.ThemeSocial
	}
	return p
}

// StyleConfig is the style axis of a bot: twelve independent 0-100 traits.
// No invariant ties the fields together; any combination is legal, and more
// than one trait can be dominant at once.
type StyleConfig struct {
	Sarcasm            int `json:"sarcasm"`
	Dismissiveness     int `json:"dismissiveness"`
	Logic              int `json:"logic"`
	BulletPoints       int `json:"bulletPoints"`
	EmotionalIntensity int `json:"emotionalIntensity"`
	DramaticFlair      int `json:"dramaticFlair"`
	PostLength         int `json:"postLength"` // higher = shorter posts
	MemeStyle          int `json:"memeStyle"`
	PseudoIntellectual int `json:"pseudoIntellectual"`
	Jargon             int `json:"jargon"`
	Supportiveness     int `json:"supportiveness"`
	Agreeableness      int `json:"agreeableness"`
}

// Normalize clamps every trait to [0,100].
func (s StyleConfig) Normalize() StyleConfig {
	s.Sarcasm = Clamp(s.Sarcasm)
	s.Dismissiveness = Clamp(s.Dismissiveness)
	s.Logic = Clamp(s.Logic)
	s.BulletPoints = Clamp(s.BulletPoints)
	s.EmotionalIntensity = Clamp(s.EmotionalIntensity)
	s.DramaticFlair = Clamp(s.DramaticFlair)
	s.PostLength = Clamp(s.PostLength)
	s.MemeStyle = Clamp(s.MemeStyle)
	s.PseudoIntellectual = Clamp(s.PseudoIntellectual)
	s.Jargon = Clamp(s.Jargon)
	s.Supportiveness = Clamp(s.Supportiveness)
	s.Agreeableness = Clamp(s.Agreeableness)
	return s
}

// NeutralStyle returns a StyleConfig with every trait at the midpoint.
func NeutralStyle() StyleConfig {
	return StyleConfig{
		Sarcasm:            NeutralValue,
		Dismissiveness:     NeutralValue,
		Logic:              NeutralValue,
		BulletPoints:       NeutralValue,
		EmotionalIntensity: NeutralValue,
		DramaticFlair:      NeutralValue,
		PostLength:         NeutralValue,
		MemeStyle:          NeutralValue,
		PseudoIntellectual: NeutralValue,
		Jargon:             NeutralValue,
		Supportiveness:     NeutralValue,
		Agreeableness:      NeutralValue,
	}
}

// AxisValues holds the five bipolar display axes plus verbosity and emoji
// amount, as they appear on the physical panel and in the CSV log. Each pair
// sums to 100 so the log can report both poles.
type AxisValues struct {
	Friendly    int `json:"friendly"`
	Aggressive  int `json:"aggressive"`
	Logical     int `json:"logical"`
	Illogical   int `json:"illogical"`
	Humor       int `json:"humor"`
	Serious     int `json:"serious"`
	Sarcasm     int `json:"sarcasm"`
	Direct      int `json:"direct"`
	OpenMinded  int `json:"openMinded"`
	ClosedMind  int `json:"closedMinded"`
	Minimal     int `json:"minimal"`
	Verbose     int `json:"verbose"`
	EmojiAmount int `json:"emojiAmount"`
}

// BotConfig is the full round-scoped configuration: what the bot talks
// about, the opinion it holds, and how it writes. Created once at round
// setup (UI form or device mapping), read-only afterward, replaced on
// restart.
type BotConfig struct {
	Topic    string            `json:"topic"`
	Stance   string            `json:"stance"`
	Opinion  PersonalityConfig `json:"opinionConfig"`
	Style    StyleConfig       `json:"styleConfig"`
	Platform types.Platform    `json:"platform,omitempty"`

	// Axes preserves the panel-facing bipolar readings for logging and
	// receipts. Zero value means the config came from the UI form.
	Axes AxisValues `json:"axes,omitempty"`
}

// Validate rejects configs that must not start a round.
func (c *BotConfig) Validate() error {
	if strings.TrimSpace(c.Topic) == "" {
		return fmt.Errorf("bot config requires a topic")
	}
	if strings.TrimSpace(c.Stance) == "" {
		return fmt.Errorf("bot config requires a stance")
	}
	return nil
}

// Normalize returns a copy with all numeric fields clamped and enum
// defaults substituted.
func (c BotConfig) Normalize() BotConfig {
	c.Opinion = c.Opinion.Normalize()
	c.Style = c.Style.Normalize()
	if c.Platform != "" && !c.Platform.IsValid() {
		c.Platform = ""
	}
	return c
}
