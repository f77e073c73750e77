// Package clean decides whether and how to remove directories that the
// comparator reported as identical copies of an archive. It sits outside
// the comparison core: the comparator itself never deletes anything.
package clean

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sdejongh/packcheck/pkg/models"
)

// Mode selects the deletion policy
type Mode string

const (
	// ModeNever reports identical pairs without deleting anything
	ModeNever Mode = "never"
	// ModeInteractive prompts for each identical pair
	ModeInteractive Mode = "interactive"
	// ModeAlways deletes every identical pair without prompting
	ModeAlways Mode = "always"
)

// ParseMode parses a deletion mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeNever:
		return ModeNever, nil
	case ModeInteractive:
		return ModeInteractive, nil
	case ModeAlways:
		return ModeAlways, nil
	default:
		return "", fmt.Errorf("invalid delete mode: %s (valid: never, interactive, always)", s)
	}
}

// Strategy decides whether a directory confirmed identical to its archive
// should be deleted
type Strategy interface {
	// ShouldDelete is called once per identical pair
	ShouldDelete(result *models.ComparisonResult) bool

	// Name returns the strategy name
	Name() string
}

// NewStrategy creates the strategy for the given mode. The reader and
// writer are only used by the interactive strategy for its prompt.
func NewStrategy(mode Mode, in io.Reader, out io.Writer) Strategy {
	switch mode {
	case ModeAlways:
		return &alwaysStrategy{}
	case ModeInteractive:
		return &interactiveStrategy{in: bufio.NewReader(in), out: out}
	default:
		return &neverStrategy{}
	}
}

type neverStrategy struct{}

func (s *neverStrategy) ShouldDelete(result *models.ComparisonResult) bool { return false }
func (s *neverStrategy) Name() string                                      { return "never" }

type alwaysStrategy struct{}

func (s *alwaysStrategy) ShouldDelete(result *models.ComparisonResult) bool { return true }
func (s *alwaysStrategy) Name() string                                      { return "always" }

// interactiveStrategy prompts per pair and remembers an apply-to-all answer
// for the rest of the batch
type interactiveStrategy struct {
	in         *bufio.Reader
	out        io.Writer
	remembered *bool
}

func (s *interactiveStrategy) ShouldDelete(result *models.ComparisonResult) bool {
	if s.remembered != nil {
		return *s.remembered
	}

	for {
		fmt.Fprintf(s.out, "Delete directory %s (identical to %s)? [y/n/a/q]: ",
			result.DirectoryPath, result.ArchivePath)

		line, err := s.in.ReadString('\n')
		if err != nil {
			// EOF on stdin means no more answers are coming; stop deleting
			no := false
			s.remembered = &no
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		case "a", "all":
			yes := true
			s.remembered = &yes
			return true
		case "q", "quit":
			no := false
			s.remembered = &no
			return false
		default:
			fmt.Fprintln(s.out, "Please answer y (yes), n (no), a (yes to all) or q (no to all).")
		}
	}
}

func (s *interactiveStrategy) Name() string { return "interactive" }
