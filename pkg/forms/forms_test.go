package forms

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"pgregory.net/rapid"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"student.name@cqmu.edu.cn", true},
		{"a@b", false},
		{"a.com", false},
		{"", false},
		{"a b@c.d", false},
		{"a@@b.c", false},
		{"@b.c", false},
	}
	for _, tt := range tests {
		if got := ValidateEmail(tt.in); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSubmitFeedback(t *testing.T) {
	now := time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC)

	for _, blank := range []string{"", "   ", "\n\t "} {
		if _, err := SubmitFeedback(blank, now); !errors.Is(err, ErrEmptyFeedback) {
			t.Errorf("SubmitFeedback(%q) err = %v", blank, err)
		}
	}

	r, err := SubmitFeedback("great job", now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("receipt id %q is not a uuid", r.ID)
	}
	if !r.SubmittedAt.Equal(now) || r.Message != FeedbackThanks {
		t.Errorf("unexpected receipt %+v", r)
	}
}

func TestSubscribe(t *testing.T) {
	if _, err := Subscribe("nope", time.Now()); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	r, err := Subscribe("a@b.co", time.Now())
	if err != nil || !strings.Contains(r.Message, "a@b.co") {
		t.Fatalf("unexpected result %+v %v", r, err)
	}
}

func TestFeedbackAcceptsAnyNonBlank(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pad := rapid.StringOfN(rapid.SampledFrom([]rune{' ', '\t', '\n'}), 0, 5, -1).Draw(t, "pad")
		body := rapid.StringMatching(`[a-z\p{Han}]{1,20}`).Draw(t, "body")
		if _, err := SubmitFeedback(pad+body+pad, time.Now()); err != nil {
			t.Fatalf("non-blank message rejected: %q", pad+body+pad)
		}
	})
}
