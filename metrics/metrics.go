package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jomag/romtest/types"
)

const (
	MetricsNamespace = "romtest"
)

var (
	Debug                bool = true
	validResults              = []types.TestStatus{types.TestStatusPass, types.TestStatusFail, types.TestStatusSkip}
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "verdicts_total",
		Help:      "Count of per-test verdicts",
	}, []string{
		"suite",
		"run_id",
		"group",
		"test",
		"result",
	})

	conformanceResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "conformance_results",
		Help:      "Result of conformance runs",
	}, []string{
		"emulator",
		"run_id",
		"result",
	})

	conformanceTestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "conformance_test_total",
		Help:      "Total number of conformance tests",
	}, []string{
		"emulator",
		"run_id",
	})

	conformanceTestPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "conformance_test_passed",
		Help:      "Number of passed conformance tests",
	}, []string{
		"emulator",
		"run_id",
	})

	conformanceTestFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "conformance_test_failed",
		Help:      "Number of failed conformance tests",
	}, []string{
		"emulator",
		"run_id",
	})

	conformanceTestDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "conformance_test_duration",
		Help:      "Duration of conformance runs",
	}, []string{
		"emulator",
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordVerdict records the outcome of one test execution.
func RecordVerdict(suite string, runID string, group string, test string, result types.TestStatus) {
	if !isValidResult(result) {
		log.Error("RecordVerdict - invalid result", "result", result)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "verdicts_total",
			"suite", suite,
			"run_id", runID,
			"group", group,
			"test", test,
			"result", result)
	}
	verdictsTotal.WithLabelValues(suite, runID, group, test, string(result)).Inc()
}

// RecordConformance records the aggregate outcome of a full run against one
// emulator binary.
func RecordConformance(
	emulator string,
	runID string,
	result string,
	total int,
	passed int,
	failed int,
	duration time.Duration,
) {
	conformanceResults.WithLabelValues(emulator, runID, result).Set(1)
	conformanceTestTotal.WithLabelValues(emulator, runID).Add(float64(total))
	conformanceTestPassed.WithLabelValues(emulator, runID).Add(float64(passed))
	conformanceTestFailed.WithLabelValues(emulator, runID).Add(float64(failed))
	conformanceTestDuration.WithLabelValues(emulator, runID).Set(duration.Seconds())
}

func isValidResult(result types.TestStatus) bool {
	return slices.Contains(validResults, result)
}
