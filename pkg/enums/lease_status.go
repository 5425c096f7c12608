package enums

import "fmt"

// LeaseStatus tracks a software lease through its lifecycle.
type LeaseStatus string

const (
	LeaseStatusRequested LeaseStatus = "requested"
	LeaseStatusActive    LeaseStatus = "active"
	LeaseStatusExpired   LeaseStatus = "expired"
	LeaseStatusCanceled  LeaseStatus = "canceled"
)

var validLeaseStatuses = []LeaseStatus{
	LeaseStatusRequested,
	LeaseStatusActive,
	LeaseStatusExpired,
	LeaseStatusCanceled,
}

// String implements fmt.Stringer.
func (l LeaseStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeaseStatus.
func (l LeaseStatus) IsValid() bool {
	for _, candidate := range validLeaseStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeaseStatus converts raw input into a LeaseStatus.
func ParseLeaseStatus(value string) (LeaseStatus, error) {
	for _, candidate := range validLeaseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lease status %q", value)
}
