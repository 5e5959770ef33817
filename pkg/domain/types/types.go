package types

import "strconv"

// ItemID is the unique identifier of an agenda item. IDs are assigned by the
// repository from a monotonic counter and are never reused within a process.
type ItemID uint64

// String returns the string representation of the item ID
func (x ItemID) String() string {
	return strconv.FormatUint(uint64(x), 10)
}

// ChannelID represents a Slack channel identifier
type ChannelID string

// String returns the string representation of the channel ID
func (x ChannelID) String() string {
	return string(x)
}

// UserID represents a Slack user identifier
type UserID string

// String returns the string representation of the user ID
func (x UserID) String() string {
	return string(x)
}
