package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestToggleFlagAcceptsLiterals(t *testing.T) {
	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "default_kept", defaultValue: true, arguments: nil, expected: true},
		{name: "bare_flag", defaultValue: false, arguments: []string{"--use-gitignore"}, expected: true},
		{name: "attached_no", defaultValue: true, arguments: []string{"--use-gitignore=no"}, expected: false},
		{name: "attached_upper_off", defaultValue: true, arguments: []string{"--use-gitignore=OFF"}, expected: false},
		{name: "attached_on", defaultValue: false, arguments: []string{"--use-gitignore=on"}, expected: true},
		{name: "attached_unknown", defaultValue: true, arguments: []string{"--use-gitignore=maybe"}, expectError: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var useGitignore bool
			flagSet := pflag.NewFlagSet(rootUse, pflag.ContinueOnError)
			flagSet.SetOutput(io.Discard)
			addToggleFlag(flagSet, &useGitignore, useGitignoreFlagName, testCase.defaultValue, useGitignoreFlagDescription)
			parseError := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				if parseError == nil {
					t.Fatalf("expected parse error for %v", testCase.arguments)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("unexpected parse error: %v", parseError)
			}
			if useGitignore != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, useGitignore)
			}
		})
	}
}

func TestNormalizeArgumentsUsesCommandTree(t *testing.T) {
	rootCommand := createRootCommand(dependencies{})
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "copy_before_command_name",
			arguments: []string{"--copy", "tree"},
			expected:  []string{"--copy", "tree"},
		},
		{
			name:      "copy_before_command_alias_that_is_a_literal",
			arguments: []string{"--copy", "t"},
			expected:  []string{"--copy", "t"},
		},
		{
			name:      "copy_literal_before_command",
			arguments: []string{"--copy", "no", "tree"},
			expected:  []string{"--copy=no", "tree"},
		},
		{
			name:      "literal_after_command",
			arguments: []string{"tree", "--use-gitignore", "no"},
			expected:  []string{"tree", "--use-gitignore=no"},
		},
		{
			name:      "alias_literal_after_command",
			arguments: []string{"c", "--copy", "t"},
			expected:  []string{"c", "--copy=t"},
		},
		{
			name:      "valued_flag_consumes_command_word",
			arguments: []string{"--root", "tree", "--copy", "t"},
			expected:  []string{"--root", "tree", "--copy", "t"},
		},
		{
			name:      "non_literal_left_alone",
			arguments: []string{"copy", "--tokens", "maybe"},
			expected:  []string{"copy", "--tokens", "maybe"},
		},
		{
			name:      "init_toggle",
			arguments: []string{"init", "--force", "yes"},
			expected:  []string{"init", "--force=yes"},
		},
		{
			name:      "after_end_of_flags",
			arguments: []string{"copy", "--", "--copy", "yes"},
			expected:  []string{"copy", "--", "--copy", "yes"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := normalizeArguments(rootCommand, testCase.arguments)
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}
