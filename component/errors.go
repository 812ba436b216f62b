package component

import (
	"fmt"
	"strings"
)

// UnknownTagError is returned when markup contains element which does not
// map to any component kind.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag %q", e.Tag)
}

// InvalidChildError is returned when template is found anywhere below the root.
type InvalidChildError struct {
	Parent string
	Child  string
}

func (e *InvalidChildError) Error() string {
	return fmt.Sprintf("%s can not be a child of %s", e.Child, e.Parent)
}

// ParseFailure reports fatal structural error together with the path of
// element names leading to the offending element (inclusive).
type ParseFailure struct {
	Path []string
	Err  error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("malformed template at %s: %v", strings.Join(e.Path, "/"), e.Err)
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// Tag returns name of the offending element.
func (e *ParseFailure) Tag() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}
