package estimation

import (
	"fmt"
	"strings"
)

// Mode selects which strategy's result is authoritative.
type Mode string

const (
	ModePureML           Mode = "pure_ml"
	ModeBusinessAdjusted Mode = "business_adjusted"
)

// Modes lists every supported Mode.
var Modes = []Mode{ModePureML, ModeBusinessAdjusted}

// Valid reports whether m is one of Modes.
func (m Mode) Valid() bool {
	return m == ModePureML || m == ModeBusinessAdjusted
}

// Label returns the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModePureML:
		return "Pure ML"
	case ModeBusinessAdjusted:
		return "Business-Adjusted"
	default:
		return string(m)
	}
}

// ParseMode converts user input to a Mode.
// It accepts the identifiers ("pure_ml") as well as dashed and display forms ("pure-ml", "Pure ML"), ignoring case.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	mode := Mode(normalized)
	if !mode.Valid() {
		return "", NewErrInvalidInputDomain("mode", "must be one of %s, got %q", modeList(), s)
	}
	return mode, nil
}

// Select returns the result of the strategy chosen by mode.
// Mode is a closed enumeration: any other value is a programming error and panics.
func Select(mode Mode, mlResult, ruleResult ProfitEstimate) ProfitEstimate {
	switch mode {
	case ModePureML:
		return mlResult
	case ModeBusinessAdjusted:
		return ruleResult
	default:
		panic(fmt.Sprintf("estimation: unknown mode %q", mode))
	}
}

// Estimator returns the strategy behind mode. It panics on an unknown mode, like Select.
func (m Mode) Estimator(predictor Predictor) Estimator {
	switch m {
	case ModePureML:
		return NewModelEstimator(predictor)
	case ModeBusinessAdjusted:
		return FormulaEstimator{}
	default:
		panic(fmt.Sprintf("estimation: unknown mode %q", m))
	}
}

func modeList() string {
	names := make([]string, 0, len(Modes))
	for _, m := range Modes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
