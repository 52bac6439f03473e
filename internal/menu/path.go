package menu

import "strings"

// Root is the first segment of every path and the home navigation token.
const Root = "initial"

// Transient-mode suffix tokens as they appear on the wire and in the
// session store. At most one is present on a serialized path.
const (
	bulkSuffix   = "awaiting_files_bulk"
	deleteSuffix = "delete_mode"
)

// Mode is a transient admin editing state layered on top of a normal
// menu position.
type Mode int

const (
	ModeNormal Mode = iota
	ModeBulkUpload
	ModeDeleteSelect
)

// Path is a position in the menu tree: an ordered segment sequence plus
// a mode. Segments are joined with ':' when serialized, so segment
// tokens must never contain ':' themselves; every segment the bot emits
// is a fixed constant, which keeps that restriction enforceable by
// construction. The mode-stripped form (Base) doubles as the catalog
// key and as the resume point when a transient mode exits.
type Path struct {
	segments []string
	mode     Mode
}

// NewPath returns the root path.
func NewPath() Path {
	return Path{segments: []string{Root}}
}

// ParsePath decodes a serialized path. A trailing mode suffix is
// converted into the mode value; an empty string parses as root.
func ParsePath(s string) Path {
	if s == "" {
		return NewPath()
	}
	segments := strings.Split(s, ":")
	mode := ModeNormal
	switch segments[len(segments)-1] {
	case bulkSuffix:
		mode = ModeBulkUpload
		segments = segments[:len(segments)-1]
	case deleteSuffix:
		mode = ModeDeleteSelect
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		segments = []string{Root}
	}
	return Path{segments: segments, mode: mode}
}

// String serializes the path, re-appending the mode suffix if any.
func (p Path) String() string {
	base := p.Base()
	switch p.mode {
	case ModeBulkUpload:
		return base + ":" + bulkSuffix
	case ModeDeleteSelect:
		return base + ":" + deleteSuffix
	}
	return base
}

// Base returns the mode-stripped serialized path: the catalog key.
func (p Path) Base() string {
	if len(p.segments) == 0 {
		return Root
	}
	return strings.Join(p.segments, ":")
}

// Mode returns the transient mode, ModeNormal for a plain menu position.
func (p Path) Mode() Mode {
	return p.mode
}

// Depth returns the number of segments in the base path.
func (p Path) Depth() int {
	return len(p.segments)
}

// Segment returns the i-th segment, or "" when out of range.
func (p Path) Segment(i int) string {
	if i < 0 || i >= len(p.segments) {
		return ""
	}
	return p.segments[i]
}

// Contains reports whether seg appears anywhere in the base path.
func (p Path) Contains(seg string) bool {
	for _, s := range p.segments {
		if s == seg {
			return true
		}
	}
	return false
}

// IsRoot reports whether the path is the plain root menu.
func (p Path) IsRoot() bool {
	return len(p.segments) == 1 && p.mode == ModeNormal
}

// Push appends seg to the base path, dropping any transient mode.
func (p Path) Push(seg string) Path {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return Path{segments: append(segments, seg)}
}

// Pop removes the last base segment, dropping any transient mode. At
// root depth it returns the root path unchanged.
func (p Path) Pop() Path {
	if len(p.segments) <= 1 {
		return p.ClearMode()
	}
	segments := make([]string, len(p.segments)-1)
	copy(segments, p.segments[:len(p.segments)-1])
	return Path{segments: segments}
}

// WithMode returns the base path carrying the given mode.
func (p Path) WithMode(m Mode) Path {
	segments := make([]string, len(p.segments))
	copy(segments, p.segments)
	return Path{segments: segments, mode: m}
}

// ClearMode returns the base path with no transient mode.
func (p Path) ClearMode() Path {
	return p.WithMode(ModeNormal)
}
