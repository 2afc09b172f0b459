package logging

import (
	"go.uber.org/zap"

	"github.com/ssargent/calltrace/pkg/calllog"
)

// Sink logs pipeline diagnostics. Per-block events go out at debug level;
// the run summary at info.
type Sink struct {
	logger *zap.Logger
}

// NewSink creates a sink writing to logger
func NewSink(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) RunStarted(ranges int) {
	s.logger.Debug("located blocks", zap.Int("ranges", ranges))
}

func (s *Sink) DecodeFailed(offset int, err error) {
	s.logger.Debug("structured decode failed", zap.Int("offset", offset), zap.Error(err))
}

func (s *Sink) NotCallRecord(offset int, err error) {
	s.logger.Debug("block is not a call record", zap.Int("offset", offset), zap.Error(err))
}

func (s *Sink) MissingIdentity(offset int) {
	s.logger.Debug("dropped block without unique id", zap.Int("offset", offset))
}

func (s *Sink) Duplicate(offset int, id string) {
	s.logger.Debug("dropped duplicate record", zap.Int("offset", offset), zap.String("unique_id", id))
}

func (s *Sink) Emitted(*calllog.CallRecord) {}

func (s *Sink) RunCompleted(stats calllog.Stats) {
	s.logger.Info("decode complete",
		zap.Int("ranges", stats.Ranges),
		zap.Int("emitted", stats.Emitted),
		zap.Int("decode_failures", stats.DecodeFailures),
		zap.Int("not_call_records", stats.NotCallRecords),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("missing_identity", stats.MissingIdentity),
		zap.Any("by_service", stats.ByService),
		zap.Any("by_direction", stats.ByDirection),
	)
}

var _ calllog.Sink = (*Sink)(nil)
