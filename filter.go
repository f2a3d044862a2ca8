package treecrumb

import (
	"regexp"
	"strings"
)

// FilterMode selects how the subtree of interest is located in a page.
type FilterMode string

// Supported filter modes, in precedence order.
const (
	FilterByID        FilterMode = "id"
	FilterByClass     FilterMode = "class+tag"
	FilterByAttribute FilterMode = "attribute"
)

// FilterSpec identifies the subtree(s) of a page to extract links from.
// Exactly one mode is active per run.
type FilterSpec struct {
	Mode FilterMode `yaml:"mode"`

	// ID is the exact id attribute value for FilterByID.
	ID string `yaml:"id,omitempty"`

	// Class holds one or more whitespace-separated class names for
	// FilterByClass. A node matches when it carries all of them.
	Class string `yaml:"class,omitempty"`

	// Attribute and Value give the attribute name and its exact value
	// for FilterByAttribute.
	Attribute string `yaml:"attribute,omitempty"`
	Value     string `yaml:"value,omitempty"`

	// Tag is the element name for FilterByClass and FilterByAttribute.
	Tag string `yaml:"tag,omitempty"`
}

// NewFilterSpec builds a FilterSpec from invocation parameters.
// When several combinations are supplied the first complete one wins:
// id, then class+tag, then attribute+value+tag.
// Returns EINVALID if no combination is complete.
func NewFilterSpec(id, class, tag, attribute, value string) (FilterSpec, error) {
	var spec FilterSpec
	switch {
	case id != "":
		spec = FilterSpec{Mode: FilterByID, ID: id}
	case class != "" && tag != "":
		spec = FilterSpec{Mode: FilterByClass, Class: class, Tag: tag}
	case attribute != "" && value != "" && tag != "":
		spec = FilterSpec{Mode: FilterByAttribute, Attribute: attribute, Value: value, Tag: tag}
	default:
		return FilterSpec{}, Errorf(EINVALID, "provide either an id, a class name and element, or an attribute, value and element")
	}
	if err := spec.Validate(); err != nil {
		return FilterSpec{}, err
	}
	return spec, nil
}

// Validate returns an error if the active mode is missing a required field.
func (s FilterSpec) Validate() error {
	switch s.Mode {
	case FilterByID:
		if s.ID == "" {
			return Errorf(EINVALID, "filter id required")
		}
	case FilterByClass:
		if strings.TrimSpace(s.Class) == "" {
			return Errorf(EINVALID, "filter class name required")
		}
		if s.Tag == "" {
			return Errorf(EINVALID, "filter element required with class name")
		}
	case FilterByAttribute:
		if s.Attribute == "" {
			return Errorf(EINVALID, "filter attribute name required")
		}
		if s.Value == "" {
			return Errorf(EINVALID, "filter attribute value required")
		}
		if s.Tag == "" {
			return Errorf(EINVALID, "filter element required with attribute")
		}
	case "":
		return Errorf(EINVALID, "filter mode required")
	default:
		return Errorf(EINVALID, "unknown filter mode %q", s.Mode)
	}
	if s.Tag != "" && !tagNameRE.MatchString(s.Tag) {
		return Errorf(EINVALID, "invalid element name %q", s.Tag)
	}
	return nil
}

var tagNameRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// unsafeLabelChars matches runs of characters not allowed in snapshot names.
var unsafeLabelChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Label returns a filename-safe identifier for the filter,
// e.g. "nav", "toc-tree" or "data-role-sitemap".
func (s FilterSpec) Label() string {
	var raw string
	switch s.Mode {
	case FilterByID:
		raw = s.ID
	case FilterByClass:
		raw = strings.Join(strings.Fields(s.Class), "-")
	case FilterByAttribute:
		raw = s.Attribute + "-" + s.Value
	}
	label := strings.Trim(unsafeLabelChars.ReplaceAllString(raw, "_"), "_")
	if label == "" {
		return string(s.Mode)
	}
	return label
}

// String describes the filter for logs and messages.
func (s FilterSpec) String() string {
	switch s.Mode {
	case FilterByID:
		return "id=" + s.ID
	case FilterByClass:
		return s.Tag + "." + strings.Join(strings.Fields(s.Class), ".")
	case FilterByAttribute:
		return s.Tag + "[" + s.Attribute + "=" + s.Value + "]"
	}
	return "(none)"
}
