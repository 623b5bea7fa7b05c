package verify

// DeviceMatches reports whether the presented machine identifier equals
// the one bound at enrollment. Exact string equality, no normalization:
// a device swap always fails verification regardless of the face result.
func DeviceMatches(presented, bound string) bool {
	return presented == bound
}
