package types

import (
	"fmt"
	"strings"
)

// Platform represents the social media UI a round imitates
type Platform string

const (
	PlatformYouTube  Platform = "youtube"  // Video comment thread layout
	PlatformTwitter  Platform = "twitter"  // Short post feed layout
	PlatformWhatsApp Platform = "whatsapp" // Group chat layout
)

// Category represents the direction of a bot's opinion
type Category string

const (
	CategoryPro      Category = "pro"
	CategoryCon      Category = "con"
	CategoryAgree    Category = "agree"
	CategoryDisagree Category = "disagree"
	CategorySupport  Category = "support"
	CategoryOppose   Category = "oppose"
)

// Theme represents the subject area of a round's topic
type Theme string

const (
	ThemePolitical     Theme = "political"
	ThemeEnvironmental Theme = "environmental"
	ThemeTech          Theme = "tech"
	ThemeSocial        Theme = "social"
	ThemeEconomic      Theme = "economic"
	ThemeCultural      Theme = "cultural"
)

// CommentSource marks who authored a generated comment
type CommentSource string

const (
	SourceGeneratedHuman CommentSource = "generatedHuman"
	SourceGeneratedBot   CommentSource = "generatedBot"
)

var (
	// AllPlatforms contains all valid platforms
	AllPlatforms = []Platform{
		PlatformYouTube,
		PlatformTwitter,
		PlatformWhatsApp,
	}

	// AllCategories contains all valid opinion categories
	AllCategories = []Category{
		CategoryPro,
		CategoryCon,
		CategoryAgree,
		CategoryDisagree,
		CategorySupport,
		CategoryOppose,
	}

	// AllThemes contains all valid topic themes
	AllThemes = []Theme{
		ThemePolitical,
		ThemeEnvironmental,
		ThemeTech,
		ThemeSocial,
		ThemeEconomic,
		ThemeCultural,
	}

	// platformMap maps string values to Platform
	platformMap = map[string]Platform{
		string(PlatformYouTube):  PlatformYouTube,
		string(PlatformTwitter):  PlatformTwitter,
		string(PlatformWhatsApp): PlatformWhatsApp,
	}

	// platformCodenames maps the device panel's on-the-wire platform names
	// to internal platforms. The hardware speaks in parody names.
	platformCodenames = map[string]Platform{
		"robotube": PlatformYouTube,
		"botter":   PlatformTwitter,
		"botsapp":  PlatformWhatsApp,
	}

	// categoryMap maps string values to Category
	categoryMap = map[string]Category{
		string(CategoryPro):      CategoryPro,
		string(CategoryCon):      CategoryCon,
		string(CategoryAgree):    CategoryAgree,
		string(CategoryDisagree): CategoryDisagree,
		string(CategorySupport):  CategorySupport,
		string(CategoryOppose):   CategoryOppose,
	}

	// themeMap maps string values to Theme
	themeMap = map[string]Theme{
		string(ThemePolitical):     ThemePolitical,
		string(ThemeEnvironmental): ThemeEnvironmental,
		string(ThemeTech):          ThemeTech,
		string(ThemeSocial):        ThemeSocial,
		string(ThemeEconomic):      ThemeEconomic,
		string(ThemeCultural):      ThemeCultural,
	}
)

// Error types for invalid values
var (
	ErrInvalidPlatform = fmt.Errorf("invalid platform")
	ErrInvalidCategory = fmt.Errorf("invalid category")
	ErrInvalidTheme    = fmt.Errorf("invalid theme")
)

// IsValid checks if the Platform is valid
func (p Platform) IsValid() bool {
	_, ok := platformMap[string(p)]
	return ok
}

// String converts the enum to string
func (p Platform) String() string {
	return string(p)
}

// ParsePlatform parses a string into a Platform
func ParsePlatform(s string) (Platform, error) {
	if platform, ok := platformMap[s]; ok {
		return platform, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidPlatform, s)
}

// PlatformFromCodename resolves a device panel codename (case-insensitive)
// into a Platform. Returns false for unrecognized codenames so callers can
// leave the platform unset rather than guessing.
func PlatformFromCodename(name string) (Platform, bool) {
	platform, ok := platformCodenames[strings.ToLower(strings.TrimSpace(name))]
	return platform, ok
}

// IsValid checks if the Category is valid
func (c Category) IsValid() bool {
	_, ok := categoryMap[string(c)]
	return ok
}

// String converts the enum to string
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	if category, ok := categoryMap[s]; ok {
		return category, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidCategory, s)
}

// IsSupportive reports whether the category points in the "for" direction.
// Pro, agree and support render with support-class stance words; the other
// three render with oppose-class stance words.
func (c Category) IsSupportive() bool {
	switch c {
	case CategoryPro, CategoryAgree, CategorySupport:
		return true
	default:
		return false
	}
}

// IsValid checks if the Theme is valid
func (t Theme) IsValid() bool {
	_, ok := themeMap[string(t)]
	return ok
}

// String converts the enum to string
func (t Theme) String() string {
	return string(t)
}

// ParseTheme parses a string into a Theme
func ParseTheme(s string) (Theme, error) {
	if theme, ok := themeMap[s]; ok {
		return theme, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidTheme, s)
}
