package types

import "github.com/marketlens/stockcompare/pkg/errors"

// Period is the bar interval of the source datasets.
type Period string

const (
	PeriodWeekly Period = "weekly"
	PeriodDaily  Period = "daily"
)

// AllPeriods lists the supported periods, used for CLI usage text and schema enums.
var AllPeriods = []any{string(PeriodWeekly), string(PeriodDaily)}

// ParsePeriod validates and converts a period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodDaily:
		return PeriodDaily, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidPeriod, "period must be %q or %q, got %q", PeriodWeekly, PeriodDaily, s)
	}
}
