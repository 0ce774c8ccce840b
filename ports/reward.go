package ports

// RewardIssuer produces the terminal reward body sent to a client that
// has cleared the full challenge run.
type RewardIssuer interface {
	Issue(clientID string) (string, error)
}
