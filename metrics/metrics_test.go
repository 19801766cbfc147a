package metrics

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jomag/romtest/types"
)

func TestErrToLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "nil error",
			err:  nil,
		},
		{
			name: "simple error",
			err:  errors.New("test error"),
		},
		{
			name: "error with special chars",
			err:  errors.New("test@error#123"),
		},
		{
			name: "error with multiple spaces",
			err:  errors.New("test   error"),
		},
		{
			name: "error with multiple underscores",
			err:  errors.New("test__error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errToLabel(tt.err)
			validLabelRegex := regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)
			if !validLabelRegex.MatchString(result) {
				t.Errorf("errLabel() = %v, is not a valid Prometheus label", result)
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	// just test that it doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("RecordError panic'd")
		}
	}()

	RecordError("test_error")
}

func TestRecordErrorDetails(t *testing.T) {
	// Test with nil error
	RecordErrorDetails("test", nil)

	// Test with actual error
	RecordErrorDetails("test", errors.New("sample error"))
}

func TestRecordVerdict(t *testing.T) {
	RecordVerdict("Mooneye Test Suite", "run1", "acceptance", "add_sp_e_timing", types.TestStatusPass)
	RecordVerdict("Mooneye Test Suite", "run1", "acceptance/timer", "div_write", types.TestStatusFail)
	RecordVerdict("Blargg Test Suite", "run1", "cpu_instrs", "01-special", types.TestStatusSkip)

	// Invalid results are dropped, not recorded.
	RecordVerdict("Blargg Test Suite", "run1", "cpu_instrs", "01-special", "bogus")
}

func TestRecordConformance(t *testing.T) {
	RecordConformance("/usr/bin/rustboy", "run1", "pass", 1, 1, 0, time.Second)
	RecordConformance("/usr/bin/rustboy", "run1", "fail", 1, 0, 1, time.Second)
}
