package comments

import "github.com/neo/botspotter_backend/internal/types"

// Comment is one entry of a round's generated feed. IsBotted is the ground
// truth the player is trying to recover and must always equal
// Source == SourceGeneratedBot.
type Comment struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Username  string              `json:"username"`
	Timestamp string              `json:"timestamp"`
	Source    types.CommentSource `json:"source"`
	IsBotted  bool                `json:"isBotted"`
}
