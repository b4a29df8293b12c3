package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFeed, "test message: %s", "value")

	if err.Code != ErrCodeInvalidFeed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFeed)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_FEED: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodeFeedNotFound, "no feed"),
			code: ErrCodeFeedNotFound,
			want: true,
		},
		{
			name: "different code",
			err:  New(ErrCodeFeedNotFound, "no feed"),
			code: ErrCodeNetwork,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("plain"),
			code: ErrCodeInternal,
			want: false,
		},
		{
			name: "wrapped structured error",
			err:  Wrap(ErrCodeTimeout, errors.New("deadline"), "fetch"),
			code: ErrCodeTimeout,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidConfig, "bad")); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidConfig)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}
