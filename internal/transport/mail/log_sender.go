package mail

import (
	"context"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
)

// LogSender writes codes to the debug log instead of mailing them. Meant for
// local development only.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.With("sender", "log")}
}

func (s *LogSender) SendCode(ctx context.Context, msg CodeMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Debug("one-time code", "to", msg.To, "purpose", msg.Purpose, "code", msg.Code, "ttl", msg.TTL.String())
	return nil
}

var _ Sender = (*LogSender)(nil)
