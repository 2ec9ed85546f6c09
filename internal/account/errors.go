package account

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrBalanceMismatch   = errors.New("final balance does not match completed operations")
	ErrNegativeBalance   = errors.New("balance went negative")
	ErrBalanceAboveBound = errors.New("balance exceeds initial balance plus all deposits")
	ErrCountMismatch     = errors.New("transaction count does not match completed operations")
	ErrTotalMismatch     = errors.New("total amount does not match completed operations")
)

// Violation is one broken invariant found by Verify.
type Violation struct {
	Err  error
	Want string
	Got  string
}

func newViolation(err error, want, got string) *Violation {
	return &Violation{Err: err, Want: want, Got: got}
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%v: want %s, got %s", v.Err, v.Want, v.Got)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// Violations flattens an error returned by Verify.
func Violations(err error) []*Violation {
	if err == nil {
		return nil
	}
	var out []*Violation
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, Violations(e)...)
		}
		return out
	}
	var v *Violation
	if errors.As(err, &v) {
		out = append(out, v)
	}
	return out
}

func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}
