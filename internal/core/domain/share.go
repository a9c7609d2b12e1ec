package domain

// ShareSnapshot is a frozen copy of a session's turns, addressable by
// an unguessable token. Snapshots are immutable and never expire.
type ShareSnapshot struct {
	// Token is the opaque identifier granting read access.
	Token string

	// ChatID is the id of the session the snapshot was taken from.
	ChatID string

	// Turns is the session's turn log at mint time, newest-first.
	Turns []ChatTurn
}
