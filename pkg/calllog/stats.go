package calllog

// Stats counts what happened to every located block during one run.
type Stats struct {
	Ranges          int `json:"ranges"`
	DecodeFailures  int `json:"decodeFailures"`
	NotCallRecords  int `json:"notCallRecords"`
	Duplicates      int `json:"duplicates"`
	MissingIdentity int `json:"missingIdentity"`
	Emitted         int `json:"emitted"`

	ByService   map[ServiceType]int `json:"byService"`
	ByDirection map[Direction]int   `json:"byDirection"`
}

func newStats(ranges int) Stats {
	return Stats{
		Ranges:      ranges,
		ByService:   make(map[ServiceType]int),
		ByDirection: make(map[Direction]int),
	}
}

func (s *Stats) count(rec *CallRecord) {
	s.Emitted++
	s.ByService[rec.ServiceType]++
	s.ByDirection[rec.Direction]++
}

// Result is the outcome of one decode run.
type Result struct {
	Records []CallRecord
	Stats   Stats
}
