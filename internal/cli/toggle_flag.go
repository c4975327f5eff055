package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagType          = "bool"
	toggleFlagImplicitValue = "true"
	invalidToggleFormat     = "invalid value %q for --%s; accepted values: %s"
	flagAssignment          = "="
	longFlagPrefix          = "--"
	endOfFlagsMarker        = "--"
)

// toggleLiterals are the spellings accepted by on/off flags such as --copy
// and --use-gitignore.
var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"1":     true,
	"false": false,
	"f":     false,
	"no":    false,
	"n":     false,
	"off":   false,
	"0":     false,
}

func parseToggleLiteral(input string) (bool, bool) {
	value, known := toggleLiterals[strings.ToLower(strings.TrimSpace(input))]
	return value, known
}

func acceptedToggleLiterals() string {
	literals := make([]string, 0, len(toggleLiterals))
	for literal := range toggleLiterals {
		literals = append(literals, literal)
	}
	sort.Strings(literals)
	return strings.Join(literals, ", ")
}

// toggleFlag is a boolean flag that also accepts yes/no and on/off, either
// attached with "=" or as the following argument.
type toggleFlag struct {
	target *bool
	name   string
}

func (flag *toggleFlag) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = toggleFlagImplicitValue
	}
	value, known := parseToggleLiteral(input)
	if !known {
		return fmt.Errorf(invalidToggleFormat, input, flag.name, acceptedToggleLiterals())
	}
	*flag.target = value
	return nil
}

func (flag *toggleFlag) String() string {
	if flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag *toggleFlag) Type() string {
	return toggleFlagType
}

// addToggleFlag registers a toggle that reads as true when given bare.
func addToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleFlag{target: target, name: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = toggleFlagImplicitValue
}

// argumentGrammar records, for a command tree, which long flags are toggles,
// which consume the next argument, and which words name commands.
type argumentGrammar struct {
	toggles  map[string]struct{}
	valued   map[string]struct{}
	commands map[string]struct{}
}

func newArgumentGrammar(rootCommand *cobra.Command) argumentGrammar {
	grammar := argumentGrammar{
		toggles:  map[string]struct{}{},
		valued:   map[string]struct{}{},
		commands: map[string]struct{}{},
	}
	grammar.learn(rootCommand)
	return grammar
}

func (grammar argumentGrammar) learn(command *cobra.Command) {
	recordFlag := func(flag *pflag.Flag) {
		switch {
		case flag.Value.Type() == toggleFlagType:
			grammar.toggles[flag.Name] = struct{}{}
		case flag.NoOptDefVal == "":
			grammar.valued[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(recordFlag)
	command.Flags().VisitAll(recordFlag)
	for _, child := range command.Commands() {
		grammar.commands[child.Name()] = struct{}{}
		for _, alias := range child.Aliases {
			grammar.commands[alias] = struct{}{}
		}
		grammar.learn(child)
	}
}

// normalize rewrites "--toggle value" as "--toggle=value" when value is a
// toggle literal. Until a command word has been seen, a word naming a command
// stays the command, so "flatten --copy t" copies the tree.
func (grammar argumentGrammar) normalize(arguments []string) []string {
	normalized := make([]string, 0, len(arguments))
	commandSeen := false
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == endOfFlagsMarker {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(argument, longFlagPrefix) && !strings.Contains(argument, flagAssignment) {
			name := strings.TrimPrefix(argument, longFlagPrefix)
			hasNext := index+1 < len(arguments)
			if _, valued := grammar.valued[name]; valued && hasNext {
				normalized = append(normalized, argument, arguments[index+1])
				index++
				continue
			}
			if _, toggle := grammar.toggles[name]; toggle && hasNext && grammar.joinsToggle(arguments[index+1], commandSeen) {
				normalized = append(normalized, argument+flagAssignment+arguments[index+1])
				index++
				continue
			}
			normalized = append(normalized, argument)
			continue
		}
		if _, isCommand := grammar.commands[argument]; isCommand {
			commandSeen = true
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func (grammar argumentGrammar) joinsToggle(next string, commandSeen bool) bool {
	if _, literal := parseToggleLiteral(next); !literal {
		return false
	}
	if _, isCommand := grammar.commands[next]; isCommand && !commandSeen {
		return false
	}
	return true
}

// normalizeArguments applies the argument grammar of rootCommand.
func normalizeArguments(rootCommand *cobra.Command, arguments []string) []string {
	return newArgumentGrammar(rootCommand).normalize(arguments)
}
