package model

import (
	"errors"
	"fmt"
	"strings"
)

// FaultKind tags a failure with its propagation class so retry and abort
// decisions switch on the tag, never on error-message text.
type FaultKind int

const (
	FaultFatal         FaultKind = iota // Aborts the run before any store mutation
	FaultRetryable                      // Transient upstream failure, retried per policy
	FaultItemRejected                   // Single candidate rejected, batch continues
	FaultRecordDropped                  // Side-channel record silently filtered
)

func (k FaultKind) String() string {
	switch k {
	case FaultFatal:
		return "fatal"
	case FaultRetryable:
		return "retryable"
	case FaultItemRejected:
		return "item-rejected"
	case FaultRecordDropped:
		return "record-dropped"
	}
	return fmt.Sprintf("fault(%d)", int(k))
}

// Fault is the tagged error used across the validation and merge engine.
type Fault struct {
	Kind    FaultKind
	Reasons []string // Accumulated human-readable reasons (item rejections)
	Raw     string   // Raw upstream text, preserved for parse-failure diagnosis
	Err     error    // Underlying cause, if any
}

func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString(f.Kind.String())
	if len(f.Reasons) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(f.Reasons, "; "))
	}
	if f.Err != nil {
		if len(f.Reasons) > 0 {
			b.WriteString(" (")
			b.WriteString(f.Err.Error())
			b.WriteString(")")
		} else {
			b.WriteString(": ")
			b.WriteString(f.Err.Error())
		}
	}
	return b.String()
}

func (f *Fault) Unwrap() error { return f.Err }

// Fatal wraps err as a run-aborting fault.
func Fatal(err error) *Fault {
	return &Fault{Kind: FaultFatal, Err: err}
}

// ParseFailure is a fatal fault that keeps the unparseable upstream text.
func ParseFailure(raw string, err error) *Fault {
	return &Fault{Kind: FaultFatal, Raw: raw, Err: err}
}

// Retryable wraps err as a transient fault eligible for the retry schedule.
func Retryable(err error) *Fault {
	return &Fault{Kind: FaultRetryable, Err: err}
}

// ItemRejected builds a candidate-scoped fault from validation reasons.
func ItemRejected(reasons ...string) *Fault {
	return &Fault{Kind: FaultItemRejected, Reasons: reasons}
}

// RecordDropped builds a record-scoped fault for a filtered side-channel.
func RecordDropped(reason string) *Fault {
	return &Fault{Kind: FaultRecordDropped, Reasons: []string{reason}}
}

// AsFault unwraps err to a *Fault if one is in the chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsRetryable reports whether err carries the retryable tag.
func IsRetryable(err error) bool {
	f, ok := AsFault(err)
	return ok && f.Kind == FaultRetryable
}

// IsFatal reports whether err carries the fatal tag. Untagged errors are
// treated as fatal by callers; this only inspects the tag itself.
func IsFatal(err error) bool {
	f, ok := AsFault(err)
	return ok && f.Kind == FaultFatal
}
