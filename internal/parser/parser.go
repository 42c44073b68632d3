// Package parser turns commandline text into typed commands. The
// grammar mirrors the application's command language: single-letter
// goal verbs, dsf/dcb/dcf display settings, and control words. The
// leading mode marker is stripped by the client before submission.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stride-app/stride/internal/models"
)

// Command is a closed set: one of the Goal*, Display* or control
// command structs below.
type Command interface {
	isCommand()
}

// Goal commands. Create is untargeted; the rest act on the currently
// selected goal.
type (
	GoalCreate struct {
		Name             string
		EffortToComplete uint32
	}
	GoalDelete       struct{}
	GoalAddEffort    struct{ Effort uint32 }
	GoalRemoveEffort struct{ Effort uint32 }
	GoalRefine       struct {
		ChildName             string
		ChildEffortToComplete uint32
		ParentEffortRemoved   uint32
	}
	GoalFocus         struct{}
	GoalUnfocus       struct{}
	GoalFocusSingle   struct{}
	GoalUnfocusSingle struct{}
	GoalRescope       struct{ NewEffortToComplete uint32 }
	GoalRename        struct{ NewName string }
)

// Display commands adjust the commandline presentation config.
type (
	DisplayFontSize        struct{ Pixels uint32 }
	DisplayBackgroundColor struct{ Color string }
	DisplayFontColor       struct{ Color string }
)

// Control commands.
type (
	Save           struct{}
	SwitchActivity struct{ Activity models.ActiveActivity }
	Export         struct{ Path string }
)

func (GoalCreate) isCommand()             {}
func (GoalDelete) isCommand()             {}
func (GoalAddEffort) isCommand()          {}
func (GoalRemoveEffort) isCommand()       {}
func (GoalRefine) isCommand()             {}
func (GoalFocus) isCommand()              {}
func (GoalUnfocus) isCommand()            {}
func (GoalFocusSingle) isCommand()        {}
func (GoalUnfocusSingle) isCommand()      {}
func (GoalRescope) isCommand()            {}
func (GoalRename) isCommand()             {}
func (DisplayFontSize) isCommand()        {}
func (DisplayBackgroundColor) isCommand() {}
func (DisplayFontColor) isCommand()       {}
func (Save) isCommand()                   {}
func (SwitchActivity) isCommand()         {}
func (Export) isCommand()                 {}

// Parse parses one command string.
func Parse(input string) (Command, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	verb, args := tokens[0], tokens[1:]

	switch verb {
	case "c":
		name, effort, err := nameAndEffort(verb, args)
		if err != nil {
			return nil, err
		}
		return GoalCreate{Name: name, EffortToComplete: effort}, nil
	case "d":
		return GoalDelete{}, expectArgs(verb, args, 0)
	case "e":
		effort, err := singleEffort(verb, args)
		if err != nil {
			return nil, err
		}
		return GoalAddEffort{Effort: effort}, nil
	case "re":
		effort, err := singleEffort(verb, args)
		if err != nil {
			return nil, err
		}
		return GoalRemoveEffort{Effort: effort}, nil
	case "r":
		if err := expectArgs(verb, args, 3); err != nil {
			return nil, err
		}
		childEffort, err := parseEffort(args[1])
		if err != nil {
			return nil, fmt.Errorf("r: child effort: %w", err)
		}
		removed, err := parseEffort(args[2])
		if err != nil {
			return nil, fmt.Errorf("r: parent effort removed: %w", err)
		}
		return GoalRefine{ChildName: args[0], ChildEffortToComplete: childEffort, ParentEffortRemoved: removed}, nil
	case "f":
		return GoalFocus{}, expectArgs(verb, args, 0)
	case "uf":
		return GoalUnfocus{}, expectArgs(verb, args, 0)
	case "fs":
		return GoalFocusSingle{}, expectArgs(verb, args, 0)
	case "ufs":
		return GoalUnfocusSingle{}, expectArgs(verb, args, 0)
	case "rs":
		effort, err := singleEffort(verb, args)
		if err != nil {
			return nil, err
		}
		return GoalRescope{NewEffortToComplete: effort}, nil
	case "rn":
		if err := expectArgs(verb, args, 1); err != nil {
			return nil, err
		}
		return GoalRename{NewName: args[0]}, nil
	case "dsf":
		pixels, err := singleEffort(verb, args)
		if err != nil {
			return nil, err
		}
		return DisplayFontSize{Pixels: pixels}, nil
	case "dcb":
		color, err := singleColor(verb, args)
		if err != nil {
			return nil, err
		}
		return DisplayBackgroundColor{Color: color}, nil
	case "dcf":
		color, err := singleColor(verb, args)
		if err != nil {
			return nil, err
		}
		return DisplayFontColor{Color: color}, nil
	case "w":
		return Save{}, expectArgs(verb, args, 0)
	case "h":
		return SwitchActivity{Activity: models.ActivityHelp}, expectArgs(verb, args, 0)
	case "g":
		return SwitchActivity{Activity: models.ActivityGoals}, expectArgs(verb, args, 0)
	case "export":
		if err := expectArgs(verb, args, 1); err != nil {
			return nil, err
		}
		return Export{Path: args[0]}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", verb)
	}
}

func expectArgs(verb string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%s: expected %d argument(s), got %d", verb, want, len(args))
	}
	return nil
}

func nameAndEffort(verb string, args []string) (string, uint32, error) {
	if err := expectArgs(verb, args, 2); err != nil {
		return "", 0, err
	}
	effort, err := parseEffort(args[1])
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", verb, err)
	}
	return args[0], effort, nil
}

func singleEffort(verb string, args []string) (uint32, error) {
	if err := expectArgs(verb, args, 1); err != nil {
		return 0, err
	}
	effort, err := parseEffort(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", verb, err)
	}
	return effort, nil
}

func parseEffort(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a non-negative number", s)
	}
	return uint32(n), nil
}

func singleColor(verb string, args []string) (string, error) {
	if err := expectArgs(verb, args, 1); err != nil {
		return "", err
	}
	if err := validateColor(args[0]); err != nil {
		return "", fmt.Errorf("%s: %w", verb, err)
	}
	return args[0], nil
}

// validateColor accepts #rgb, #rrggbb, or a bare color name.
func validateColor(s string) error {
	if s == "" {
		return fmt.Errorf("empty color")
	}
	if strings.HasPrefix(s, "#") {
		digits := s[1:]
		if len(digits) != 3 && len(digits) != 6 {
			return fmt.Errorf("hex color %q must have 3 or 6 digits", s)
		}
		for _, r := range digits {
			if !isHexDigit(r) {
				return fmt.Errorf("invalid hex color %q", s)
			}
		}
		return nil
	}
	for _, r := range s {
		if !isAlphanumeric(r) {
			return fmt.Errorf("invalid color name %q", s)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// tokenize splits on whitespace, honoring double-quoted tokens so goal
// names may contain spaces.
func tokenize(input string) ([]string, error) {
	var tokens []string
	rest := strings.TrimSpace(input)
	for rest != "" {
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in %q", input)
			}
			if end == 0 {
				return nil, fmt.Errorf("empty quoted string in %q", input)
			}
			tokens = append(tokens, rest[1:1+end])
			rest = strings.TrimSpace(rest[2+end:])
			continue
		}
		cut := strings.IndexAny(rest, " \t")
		if cut < 0 {
			tokens = append(tokens, rest)
			break
		}
		tokens = append(tokens, rest[:cut])
		rest = strings.TrimSpace(rest[cut:])
	}
	return tokens, nil
}
