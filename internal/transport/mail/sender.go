package mail

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

// CodeMessage is a one-time code on its way to a recipient.
type CodeMessage struct {
	To      string
	Purpose domain.Purpose
	Code    string
	TTL     time.Duration
}

// Sender delivers one-time codes. Implementations must not log the code
// above debug level.
type Sender interface {
	SendCode(ctx context.Context, msg CodeMessage) error
}

func compose(msg CodeMessage) (subject, text, html string) {
	minutes := int(math.Ceil(msg.TTL.Minutes()))
	if minutes < 1 {
		minutes = 1
	}

	switch msg.Purpose {
	case domain.PurposePasswordReset:
		subject = "Your Wanderly password reset code"
		text = fmt.Sprintf("Use the following code to reset your password: %s\n\nIt expires in %d minutes. If you did not request this, ignore this email.", msg.Code, minutes)
	default:
		subject = "Your OTP Code"
		text = fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", msg.Code, minutes)
	}
	html = fmt.Sprintf("<p>%s</p>", text)
	return subject, text, html
}
