package backlog

import (
	"fmt"
	"strings"

	"github.com/matzehuels/backlogtree/pkg/errors"
)

// Type is the kind of a backlog item.
type Type string

// Item types, ordered from coarsest to finest.
const (
	TypeEpic    Type = "epic"
	TypeFeature Type = "feature"
	TypeStory   Type = "story"
	TypeTask    Type = "task"
)

// Types lists all item types in hierarchy order.
var Types = []Type{TypeEpic, TypeFeature, TypeStory, TypeTask}

// Valid reports whether t is a known item type.
func (t Type) Valid() bool {
	switch t {
	case TypeEpic, TypeFeature, TypeStory, TypeTask:
		return true
	}
	return false
}

// Label returns the upper-case badge text for the type.
func (t Type) Label() string { return strings.ToUpper(string(t)) }

// Priority is the urgency of a backlog item.
type Priority string

// Item priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Item is a single backlog record.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Type        Type     `json:"type" yaml:"type"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Effort      string   `json:"effort,omitempty" yaml:"effort,omitempty"`
	ParentID    string   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// HasParent reports whether the item declares a parent reference.
// The reference may still be dangling; see the tree package.
func (it Item) HasParent() bool { return it.ParentID != "" }

// PriorityLabel returns the card footer text, e.g. "Priority • HIGH".
func (it Item) PriorityLabel() string {
	return fmt.Sprintf("Priority • %s", it.Priority)
}

// normalize canonicalizes enum casing so "Epic" and "high" are accepted.
func (it *Item) normalize() {
	it.ID = strings.TrimSpace(it.ID)
	it.ParentID = strings.TrimSpace(it.ParentID)
	it.Type = Type(strings.ToLower(strings.TrimSpace(string(it.Type))))
	it.Priority = Priority(strings.ToUpper(strings.TrimSpace(string(it.Priority))))
	if it.Priority == "" {
		it.Priority = PriorityMedium
	}
}

// Validate checks that every item has a usable id and known enums.
// It does not check parent references: dangling parents are a layout
// policy, not an input error.
func Validate(items []Item) error {
	for i, it := range items {
		if err := errors.ValidateItemID(it.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidItem, err, "item %d", i)
		}
		if !it.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidItem, "item %s: unknown type %q", it.ID, it.Type)
		}
		if !it.Priority.Valid() {
			return errors.New(errors.ErrCodeInvalidItem, "item %s: unknown priority %q", it.ID, it.Priority)
		}
	}
	return nil
}
