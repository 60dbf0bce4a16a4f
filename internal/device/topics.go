package device

import (
	"strings"

	"github.com/neo/botspotter_backend/internal/types"
)

// Topic describes one debatable subject the kiosk offers, with the five-rung
// stance ladder the hardware stance dial selects from.
type Topic struct {
	Name         string      `json:"name"`
	Theme        types.Theme `json:"theme"`
	StanceLadder [5]string   `json:"stanceLadder"`
}

// DefaultTopicName is used when a device sample names a topic the registry
// does not know; its ladder is the fallback for stance bucketing.
const DefaultTopicName = "social media regulation"

// builtinTopics is the kiosk's topic catalogue. The stance ladder runs from
// strongest opposition (index 0) to strongest support (index 4).
var builtinTopics = []Topic{
	{
		Name:  "social media regulation",
		Theme: types.ThemePolitical,
		StanceLadder: [5]string{
			"Social media must stay completely unregulated",
			"Regulation would do more harm than good",
			"Some light-touch rules might be acceptable",
			"Platforms need real accountability laws",
			"Strict regulation of social media is long overdue",
		},
	},
	{
		Name:  "electric cars",
		Theme: types.ThemeEnvironmental,
		StanceLadder: [5]string{
			"Electric cars are a scam that solves nothing",
			"Electric cars are overhyped and impractical",
			"Electric cars have both upsides and downsides",
			"Electric cars are clearly the better choice",
			"Everyone should switch to electric cars now",
		},
	},
	{
		Name:  "artificial intelligence",
		Theme: types.ThemeTech,
		StanceLadder: [5]string{
			"AI will ruin everything it touches",
			"AI causes more problems than it solves",
			"AI is a tool, no better or worse than its users",
			"AI will improve most people's lives",
			"AI is the best thing to happen to humanity",
		},
	},
	{
		Name:  "remote work",
		Theme: types.ThemeEconomic,
		StanceLadder: [5]string{
			"Remote work is destroying workplace culture",
			"Remote work makes teams slower and lonelier",
			"Hybrid setups are a reasonable compromise",
			"Remote work makes people happier and more productive",
			"Offices should be abolished entirely",
		},
	},
	{
		Name:  "pineapple on pizza",
		Theme: types.ThemeCultural,
		StanceLadder: [5]string{
			"Pineapple on pizza is a crime against food",
			"Pineapple does not belong anywhere near pizza",
			"Eat whatever you like, it is just pizza",
			"Sweet and savory is a great combination",
			"Pineapple is the single best pizza topping",
		},
	},
}

// Topics returns the full topic catalogue.
func Topics() []Topic {
	out := make([]Topic, len(builtinTopics))
	copy(out, builtinTopics)
	return out
}

// LookupTopic finds a topic by name, case-insensitive. Returns false when
// the registry has no such topic.
func LookupTopic(name string) (Topic, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, t := range builtinTopics {
		if strings.ToLower(t.Name) == needle {
			return t, true
		}
	}
	return Topic{}, false
}

// defaultTopic returns the fallback topic. The registry always contains it.
func defaultTopic() Topic {
	t, _ := LookupTopic(DefaultTopicName)
	return t
}
