package models

import "time"

// Channel is one of the independent notification streams.
type Channel int

const (
	// ChannelStock is the stock price feed.
	ChannelStock Channel = 1
	// ChannelChat is the chat feed.
	ChannelChat Channel = 2
)

// String returns the channel's path segment.
func (c Channel) String() string {
	switch c {
	case ChannelStock:
		return "stock"
	case ChannelChat:
		return "chat"
	default:
		return "unknown"
	}
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelStock || c == ChannelChat
}

// Registration binds a device token to a channel.
// The token is the identity, a token belongs to at most one channel.
type Registration struct {
	Token     string    `gorm:"primaryKey;size:512"`
	Channel   Channel   `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
