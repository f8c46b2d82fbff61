package app

// RestartPoll tracks a cooperative restart vote. The requester is an implicit yes;
// every seated player must agree before a new deal happens, and a single no cancels
// the poll for everyone.
type RestartPoll struct {
	requester string
	votes     map[string]bool
}

// NewRestartPoll opens a poll on behalf of the requester.
func NewRestartPoll(requester string) *RestartPoll {
	return &RestartPoll{
		requester: requester,
		votes:     map[string]bool{requester: true},
	}
}

// Requester returns the player who opened the poll.
func (p *RestartPoll) Requester() string { return p.requester }

// VoteYes records an agreement. Duplicate votes from the same player are idempotent.
func (p *RestartPoll) VoteYes(username string) {
	p.votes[username] = true
}

// Count returns the number of yes votes so far.
func (p *RestartPoll) Count() int { return len(p.votes) }

// Unanimous reports whether every one of n players has voted yes.
func (p *RestartPoll) Unanimous(n int) bool { return len(p.votes) >= n }
