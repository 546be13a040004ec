package schema

import (
	"fmt"
	"regexp"
	"strings"
)

const MaxNameLength = 12

var nameRegexp = regexp.MustCompile(`^[a-z1-5.]{1,12}$`)

// Name is a ledger account name such as "alice" or "bob.eos".
type Name string

func (n Name) Validate() error {
	s := string(n)
	if !nameRegexp.MatchString(s) || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") || strings.Contains(s, "..") {
		return fmt.Errorf("%w: invalid name %q", ErrInvalidArgument, s)
	}
	return nil
}

// Suffix returns the label after the last dot, or the name itself when it has none.
func (n Name) Suffix() Name {
	idx := strings.LastIndexByte(string(n), '.')
	if idx < 0 {
		return n
	}
	return n[idx+1:]
}

// IsBasic reports whether the name has no sub-label under a suffix.
func (n Name) IsBasic() bool {
	return n.Suffix() == n
}

func (n Name) Length() int {
	return len(n)
}

func (n Name) String() string {
	return string(n)
}
