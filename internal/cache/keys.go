package cache

import "fmt"

// Key namespace. Compatibility scores are keyed by ordered (viewer,
// candidate) pair: the verification term of the score reads the candidate
// only, so the two directions of a pair cache different values.

func FeedKey(profileID, role string) string {
	return fmt.Sprintf("feed:%s:%s", profileID, role)
}

func FeedPattern(profileID string) string {
	return fmt.Sprintf("feed:%s:*", profileID)
}

func CompatKey(viewerID, candidateID string) string {
	return fmt.Sprintf("compat:%s:%s", viewerID, candidateID)
}

// CompatPatterns covers both directions of every cached pair involving a
// profile.
func CompatPatterns(profileID string) []string {
	return []string{
		fmt.Sprintf("compat:%s:*", profileID),
		fmt.Sprintf("compat:*:%s", profileID),
	}
}

func LikesQueueKey(profileID string) string {
	return fmt.Sprintf("likes_queue:%s", profileID)
}
