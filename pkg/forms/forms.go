// Package forms validates the deck's two input forms: the team feedback
// message and the e-mail subscription.
package forms

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyFeedback rejects a message that is empty after trimming.
	ErrEmptyFeedback = errors.New("请输入留言内容")
	// ErrInvalidEmail rejects an address that does not look like one.
	ErrInvalidEmail = errors.New("请输入有效的邮箱地址")
)

// Success texts shown by the UI.
const (
	FeedbackThanks = "留言提交成功！感谢你的鼓励和建议！"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether s has the shape local@domain.tld.
func ValidateEmail(s string) bool {
	return emailRE.MatchString(s)
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID          string
	SubmittedAt time.Time
	Message     string
}

// SubmitFeedback accepts any message with non-whitespace content.
func SubmitFeedback(text string, now time.Time) (Receipt, error) {
	if strings.TrimSpace(text) == "" {
		return Receipt{}, ErrEmptyFeedback
	}
	return Receipt{
		ID:          uuid.NewString(),
		SubmittedAt: now,
		Message:     FeedbackThanks,
	}, nil
}

// Subscribe accepts a well-formed e-mail address.
func Subscribe(email string, now time.Time) (Receipt, error) {
	if !ValidateEmail(email) {
		return Receipt{}, ErrInvalidEmail
	}
	return Receipt{
		ID:          uuid.NewString(),
		SubmittedAt: now,
		Message:     "订阅成功！我们将通过邮箱 " + email + " 通知你最新内容",
	}, nil
}
