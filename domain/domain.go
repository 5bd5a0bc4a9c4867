package domain

import "time"

// Item is one collectible from the catalog. Name matching during guessing is
// case-insensitive and token based, so Name is stored as-is.
type Item struct {
	ID       string `bson:"item_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Series   string `bson:"series" json:"series"`
	Rarity   string `bson:"rarity" json:"rarity"`
	ImageURL string `bson:"img_url" json:"imgUrl"`
}

// UserRef identifies the sender of a message. Username and FirstName are
// best-effort and refreshed on the profile whenever the user wins a round.
type UserRef struct {
	ID        string `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
}

// UserProfile is the persisted collection record of one user. Items is
// append-only; FavoriteID points at one owned item or is empty.
type UserProfile struct {
	ID         string `bson:"user_id"`
	Username   string `bson:"username,omitempty"`
	FirstName  string `bson:"first_name,omitempty"`
	Items      []Item `bson:"items"`
	FavoriteID string `bson:"favorite_id,omitempty"`
}

type ChatSettings struct {
	ChatID         string `bson:"chat_id"`
	SpawnFrequency int    `bson:"spawn_frequency"`
}

// ChatUserTally counts claims by one user inside one chat.
type ChatUserTally struct {
	UserID    string `bson:"user_id" json:"userId"`
	ChatID    string `bson:"chat_id" json:"chatId"`
	Username  string `bson:"username,omitempty" json:"username,omitempty"`
	FirstName string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	Count     int64  `bson:"count" json:"count"`
}

// ChatStats counts claims across one whole chat.
type ChatStats struct {
	ChatID string `bson:"chat_id" json:"chatId"`
	Title  string `bson:"title,omitempty" json:"title,omitempty"`
	Count  int64  `bson:"count" json:"count"`
}

// IncomingMessage is the one inbound event type. The transport fills Command
// and Args when the text parses as a bot command, otherwise both are empty.
type IncomingMessage struct {
	ChatID    string
	ChatTitle string
	From      UserRef
	Text      string
	Command   string
	Args      string
	Timestamp time.Time
}
