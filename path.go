package jsondelta

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns an object-key segment.
func Key(name string) Segment { return Segment{Key: name} }

// Index returns an array-index segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Path is an ordered sequence of segments addressing a sub-value. The empty
// path addresses the document root.
type Path []Segment

// ParsePath parses the path grammar documented on the package:
//
//	path    := segment ("." segment | index)*
//	segment := identifier index*
//	index   := "[" integer "]"
//
// The empty string parses to the empty (root) path. Any violation returns a
// *ParseError carrying the byte offset of the offending character.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var p Path
	i := 0
	for {
		start := i
		for i < len(s) && s[i] != '.' && s[i] != '[' && s[i] != ']' {
			i++
		}
		if i == start {
			return nil, &ParseError{Offset: start, Msg: "empty identifier"}
		}
		p = append(p, Segment{Key: s[start:i]})
		for i < len(s) && s[i] == '[' {
			open := i
			i++
			numStart := i
			for i < len(s) && s[i] != ']' {
				i++
			}
			if i == len(s) {
				return nil, &ParseError{Offset: open, Msg: "unterminated '['"}
			}
			idx, err := parseIndexDigits(s[numStart:i])
			if err != nil {
				return nil, &ParseError{Offset: numStart, Msg: "index must be a nonnegative integer"}
			}
			p = append(p, Segment{Index: idx, IsIndex: true})
			i++ // consume ']'
		}
		if i == len(s) {
			return p, nil
		}
		// After a segment and its indices only '.', another '[', or the end
		// may follow; '[' was already consumed above, so anything but '.'
		// here is a stray character (typically an unmatched ']').
		if s[i] != '.' {
			return nil, &ParseError{Offset: i, Msg: "unexpected character"}
		}
		i++
		if i == len(s) {
			return nil, &ParseError{Offset: i, Msg: "empty identifier"}
		}
	}
}

// parseIndexDigits accepts only a nonempty run of ASCII digits, rejecting
// signs, spaces and empty content that strconv.Atoi would tolerate or
// misreport.
func parseIndexDigits(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// String renders the path back into its textual form.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Key)
	}
	return sb.String()
}
