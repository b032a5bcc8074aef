package models

import "time"

// DirectMessage is a private message. It is never edited or deleted.
type DirectMessage struct {
	ID        string
	Sender    string
	Recipient string
	Content   string
	SentAt    time.Time
}

// DiscussionMessage is a post on the shared community feed.
type DiscussionMessage struct {
	ID             string
	SenderUsername string
	Content        string
	SentAt         time.Time
}
