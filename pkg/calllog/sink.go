package calllog

// Sink receives the pipeline's diagnostics. All methods are called from one
// goroutine, after every block has been decoded, in block order.
type Sink interface {
	// RunStarted is called once with the number of located blocks.
	RunStarted(ranges int)
	// DecodeFailed reports a block the structured decoder rejected. The
	// pattern matchers still ran on it.
	DecodeFailed(offset int, err error)
	// NotCallRecord reports a block that decoded but has no record root.
	NotCallRecord(offset int, err error)
	// MissingIdentity reports a block dropped for lack of a unique id.
	MissingIdentity(offset int)
	// Duplicate reports a block dropped because its id was already emitted.
	Duplicate(offset int, id string)
	// Emitted is called for every record in output order.
	Emitted(rec *CallRecord)
	// RunCompleted is called once with the final counters.
	RunCompleted(stats Stats)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RunStarted(int)           {}
func (NopSink) DecodeFailed(int, error)  {}
func (NopSink) NotCallRecord(int, error) {}
func (NopSink) MissingIdentity(int)      {}
func (NopSink) Duplicate(int, string)    {}
func (NopSink) Emitted(*CallRecord)      {}
func (NopSink) RunCompleted(Stats)       {}

// MultiSink fans every notification out to each sink in order.
type MultiSink []Sink

func (m MultiSink) RunStarted(ranges int) {
	for _, s := range m {
		s.RunStarted(ranges)
	}
}

func (m MultiSink) DecodeFailed(offset int, err error) {
	for _, s := range m {
		s.DecodeFailed(offset, err)
	}
}

func (m MultiSink) NotCallRecord(offset int, err error) {
	for _, s := range m {
		s.NotCallRecord(offset, err)
	}
}

func (m MultiSink) MissingIdentity(offset int) {
	for _, s := range m {
		s.MissingIdentity(offset)
	}
}

func (m MultiSink) Duplicate(offset int, id string) {
	for _, s := range m {
		s.Duplicate(offset, id)
	}
}

func (m MultiSink) Emitted(rec *CallRecord) {
	for _, s := range m {
		s.Emitted(rec)
	}
}

func (m MultiSink) RunCompleted(stats Stats) {
	for _, s := range m {
		s.RunCompleted(stats)
	}
}
