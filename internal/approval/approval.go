// Package approval holds the request lifecycle shared by leave and loan requests:
//
//	[Pending] --Approve--> [Approved]
//	[Pending] --Reject---> [Rejected]
//
// Approved and Rejected are terminal.
package approval

import (
	"errors"
	"strings"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var (
	ErrUnknownDecision = errors.New("decision must be Approved or Rejected")
	ErrNotPending      = errors.New("request is no longer pending")
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseDecision menerima "Approved" atau "Rejected" (case-insensitive).
// Pending bukan keputusan.
func ParseDecision(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", ErrUnknownDecision
	}
}

// Transition checks from -> to against the lifecycle.
func Transition(from, to Status) error {
	if !to.IsTerminal() {
		return ErrUnknownDecision
	}
	if from != StatusPending {
		return ErrNotPending
	}
	return nil
}
