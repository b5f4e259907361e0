package record

// ServiceRecord is one executed, billed service. Records are append-only.
type ServiceRecord struct {
	ID               string
	ShiftID          string
	StaffID          string
	ServiceID        string
	ServiceName      string
	ServicePrice     float64
	ServiceStartTime string
	ServiceEndTime   string
	// ActualDuration is stored at checkout and trusted as-is by the metrics engine.
	ActualDuration int
	TimeRecorded   string
}
