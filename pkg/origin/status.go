package origin

// Status classifies a local checkout's relationship to its remote.
type Status int

const (
	// StatusUnchanged indicates the local checkout matches its remote
	StatusUnchanged Status = iota

	// StatusError indicates the local path failed the validity check
	StatusError

	// StatusUnknown indicates the backend did not classify the checkout
	StatusUnknown

	// StatusUpgradable indicates the remote has revisions the local
	// checkout lacks (not yet computed by any backend)
	StatusUpgradable

	// StatusDirty indicates local modifications (not yet computed by any
	// backend)
	StatusDirty
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusError:
		return "error"
	case StatusUnknown:
		return "unknown"
	case StatusUpgradable:
		return "upgradable"
	case StatusDirty:
		return "dirty"
	}
	return "invalid"
}
