package model

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Tag is a short alphanumeric label attached to a patron.
type Tag struct {
	label string
}

// NewTag validates label and wraps it.
func NewTag(label string) (Tag, error) {
	err := validation.Validate(label,
		validation.Required,
		is.Alphanumeric,
	)
	if err != nil {
		return Tag{}, fmt.Errorf("%w (%q: %v)", ErrInvalidTag, label, err)
	}
	return Tag{label: label}, nil
}

// NewTags builds tags from labels, keeping the first occurrence of each.
func NewTags(labels ...string) ([]Tag, error) {
	tags := make([]Tag, 0, len(labels))
	for _, l := range labels {
		t, err := NewTag(l)
		if err != nil {
			return nil, err
		}
		tags = appendUniqueTag(tags, t)
	}
	return tags, nil
}

func (t Tag) Label() string        { return t.label }
func (t Tag) String() string       { return t.label }
func (t Tag) Equal(other Tag) bool { return t.label == other.label }
func (t Tag) IsZero() bool         { return t.label == "" }

func appendUniqueTag(tags []Tag, t Tag) []Tag {
	for _, existing := range tags {
		if existing.Equal(t) {
			return tags
		}
	}
	return append(tags, t)
}

// TagView is a read-only window onto a patron's tag set. It has no
// mutating methods; Slice and Labels hand out detached copies.
type TagView struct {
	tags []Tag
}

func (v TagView) Len() int { return len(v.tags) }

// At returns the i-th tag in set order.
func (v TagView) At(i int) Tag { return v.tags[i] }

func (v TagView) Contains(t Tag) bool {
	for _, existing := range v.tags {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}

// Slice returns a copy of the tags in set order.
func (v TagView) Slice() []Tag {
	out := make([]Tag, len(v.tags))
	copy(out, v.tags)
	return out
}

// Labels returns a copy of the tag labels in set order.
func (v TagView) Labels() []string {
	out := make([]string, len(v.tags))
	for i, t := range v.tags {
		out[i] = t.label
	}
	return out
}

// EqualSet compares two views as sets, ignoring order.
func (v TagView) EqualSet(other TagView) bool {
	if len(v.tags) != len(other.tags) {
		return false
	}
	for _, t := range v.tags {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// String renders "[a, b, c]".
func (v TagView) String() string {
	return "[" + strings.Join(v.Labels(), ", ") + "]"
}
