// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors for the remote failure taxonomy. Callers branch with
// errors.Is: already-exists is a warning for the idempotent create
// operations, not-found and auth are fatal.
var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrAuth          = errors.New("authentication failed")
)

// MySQL-wire error numbers the platform reuses for its own resources.
var (
	existsNumbers   = map[uint16]bool{1050: true, 1061: true, 1304: true}
	notFoundNumbers = map[uint16]bool{1049: true, 1146: true, 1305: true}
	authNumbers     = map[uint16]bool{1044: true, 1045: true, 1142: true}
)

// Classify wraps a remote error with the matching sentinel, keeping the
// remote-supplied text verbatim for logs. Unrecognized errors pass through
// unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch {
		case existsNumbers[myErr.Number]:
			return fmt.Errorf("%w: %s", ErrAlreadyExists, myErr.Message)
		case notFoundNumbers[myErr.Number]:
			return fmt.Errorf("%w: %s", ErrNotFound, myErr.Message)
		case authNumbers[myErr.Number]:
			return fmt.Errorf("%w: %s", ErrAuth, myErr.Message)
		}
	}

	// The platform also reports its own resource conflicts as plain text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"):
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist") || strings.Contains(msg, "doesn't exist"):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case strings.Contains(msg, "access denied") || strings.Contains(msg, "authentication"):
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return err
}

// IsAlreadyExists reports whether err is an idempotent-conflict error.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAuth reports whether err is a credential rejection.
func IsAuth(err error) bool { return errors.Is(err, ErrAuth) }
