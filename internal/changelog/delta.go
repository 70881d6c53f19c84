package changelog

// NewSince returns the entries newer than lastSeen, still in newest-first
// order. Matching is exact string equality against the checkpointed version.
//
// When lastSeen is not present at all the checkpoint refers to a version the
// document no longer contains (rewritten or truncated source); the result is
// empty so the caller resynchronizes instead of replaying the entire history.
func NewSince(entries []Entry, lastSeen string) []Entry {
	for i, entry := range entries {
		if entry.Version == lastSeen {
			return entries[:i]
		}
	}
	return nil
}
