package filter_test

import (
	"testing"

	"github.com/temirov/flatten/internal/filter"
	"github.com/temirov/flatten/internal/types"
)

func TestPermits(t *testing.T) {
	testCases := []struct {
		name     string
		byteSize int64
		limitKB  int
		expected bool
	}{
		{name: "exactly_one_kibibyte", byteSize: 1024, limitKB: 1, expected: true},
		{name: "two_kibibytes_over_limit", byteSize: 2048, limitKB: 1, expected: false},
		{name: "partial_kibibyte_rounds_down", byteSize: 2047, limitKB: 1, expected: true},
		{name: "empty_file", byteSize: 0, limitKB: 1, expected: true},
		{name: "negative_size", byteSize: -1, limitKB: 1, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := filter.Permits(testCase.byteSize, testCase.limitKB); actual != testCase.expected {
				t.Fatalf("Permits(%d, %d): expected %t, got %t", testCase.byteSize, testCase.limitKB, testCase.expected, actual)
			}
		})
	}
}

func TestSizeGateDefaultLimit(t *testing.T) {
	sizeGate := filter.NewSizeGate(0)
	if sizeGate.LimitKB() != types.DefaultMaxFileSizeKB {
		t.Fatalf("expected default limit %d, got %d", types.DefaultMaxFileSizeKB, sizeGate.LimitKB())
	}
	if !sizeGate.Permits(1024 * 1024) {
		t.Fatalf("expected 1 MiB to be permitted by default")
	}
	if sizeGate.Permits(1025 * 1024) {
		t.Fatalf("expected 1025 KiB to be rejected by default")
	}
	var zeroGate filter.SizeGate
	if zeroGate.LimitKB() != types.DefaultMaxFileSizeKB {
		t.Fatalf("expected zero value gate to use the default limit")
	}
}
