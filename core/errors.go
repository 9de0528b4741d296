package core

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrUnsupportedDevice = errors.New("passkeys are not supported on this device")
	ErrNotAuthenticated  = errors.New("not logged in, please login or signup first")
	ErrInvalidArgument   = errors.New("invalid argument")
)

type InsufficientFundsError struct {
	Balance  *big.Int
	Required *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient ETH balance: %s. need at least %s", FormatEther(e.Balance), FormatEther(e.Required))
}

// UpstreamError wraps a rejected call to the passkey bridge, custody service,
// chain provider or history service.
type UpstreamError struct {
	Service string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(service, op string, err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}

	return &UpstreamError{Service: service, Op: op, Err: err}
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsUpstreamFailure(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

func IsPersistenceFailure(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
