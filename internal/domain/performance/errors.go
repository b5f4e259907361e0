package performance

import "errors"

var (
	ErrInvalidPolicy   = errors.New("invalid metrics policy")
	ErrInvalidAsOf     = errors.New("as_of must be an RFC3339 timestamp")
	ErrInvalidWeekEnd  = errors.New("week_end must be in YYYY-MM-DD format")
	ErrReportGenerate  = errors.New("failed to generate performance report")
	ErrSnapshotMissing = errors.New("no performance snapshot for the requested week")
)
