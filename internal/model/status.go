package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state shared by every entity.
// The zero value means "not set" and is replaced by StatusActive on first save.
type Status uint8

const (
	StatusUnset Status = iota
	StatusActive
	StatusInactive
	StatusPending
	StatusSuspended
	StatusCompleted
	StatusCancelled
)

var statusNames = [...]string{
	StatusUnset:     "",
	StatusActive:    "active",
	StatusInactive:  "inactive",
	StatusPending:   "pending",
	StatusSuspended: "suspended",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

// ParseStatus converts a stored or user supplied name into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st := StatusActive; st <= StatusCancelled; st++ {
		if statusNames[st] == name {
			return st, nil
		}
	}
	return StatusUnset, fmt.Errorf("model: unknown status %q", s)
}

// ParseOptionalStatus is ParseStatus where an empty string means StatusUnset.
func ParseOptionalStatus(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return StatusUnset, nil
	}
	return ParseStatus(s)
}

// Statuses returns every settable status in declaration order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusPending, StatusSuspended, StatusCompleted, StatusCancelled}
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// IsSet reports whether s is one of the settable states.
func (s Status) IsSet() bool {
	return s >= StatusActive && s <= StatusCancelled
}

// OrDefault returns StatusActive when s is unset.
func (s Status) OrDefault() Status {
	if !s.IsSet() {
		return StatusActive
	}
	return s
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.IsSet() {
		return nil, fmt.Errorf("model: cannot persist unset status")
	}
	return s.String(), nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	case nil:
		*s = StatusUnset
		return nil
	default:
		return fmt.Errorf("model: cannot scan %T into Status", src)
	}

	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "" {
		*s = StatusUnset
		return nil
	}

	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
