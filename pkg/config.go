package cachectl

import (
	"fmt"
	"os"
)

// Operation selects what to do with the target file's cache residency.
type Operation int

const (
	// OpCheck reports which pages of the file are resident in the page cache.
	OpCheck Operation = iota
	// OpAdd asks the kernel to prefetch the file into the page cache.
	OpAdd
	// OpRemove asks the kernel to drop the file from the page cache.
	OpRemove
)

func (op Operation) String() string {
	switch op {
	case OpCheck:
		return "check"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// ParseOperation maps a command-line token to an Operation. Anything
// other than "check", "add" or "remove" is an error.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "check":
		return OpCheck, nil
	case "add":
		return OpAdd, nil
	case "remove":
		return OpRemove, nil
	}
	return 0, fmt.Errorf("invalid operation %q", s)
}

// Config holds one invocation's settings. Built once from the command
// line and read-only afterwards.
type Config struct {
	Op      Operation
	Path    string
	Verbose bool
	Details bool
}

// HostPageSize returns the system page size, falling back to 4096 if the
// runtime reports a nonsensical value.
func HostPageSize() int {
	ps := os.Getpagesize()
	if ps <= 0 {
		return 4096
	}
	return ps
}
