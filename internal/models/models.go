package models

// User represents an adventurer account
type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
	PwHash   string `json:"-"`
	Race     string `json:"race"`
	Class    string `json:"class"`
	Gender   string `json:"gender"`
}

// Quest represents a discussion thread
type Quest struct {
	ID        int64  `json:"quest_id"`
	Title     string `json:"title"`
	PostCount int    `json:"post_count"`
}

// Post represents a single message within a quest
type Post struct {
	ID       int64  `json:"post_id"`
	AuthorID int64  `json:"author_id"`
	QuestID  int64  `json:"quest_id"`
	Text     string `json:"text"`

	// Populated by joins against the user table
	AuthorName string `json:"author_name,omitempty"`
}

// PosterRank is one entry of the post tally leaderboard
type PosterRank struct {
	Username string `json:"username"`
	Posts    int64  `json:"posts"`
	Rank     int64  `json:"rank"`
}

// Demographics holds raw user counts per race, class and gender
type Demographics struct {
	Total   int
	Races   map[string]int
	Classes map[string]int
	Genders map[string]int
}
