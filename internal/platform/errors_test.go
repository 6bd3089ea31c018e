// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestClassifyByErrorNumber(t *testing.T) {
	tests := []struct {
		name   string
		number uint16
		check  func(error) bool
	}{
		{"table exists", 1050, IsAlreadyExists},
		{"duplicate index", 1061, IsAlreadyExists},
		{"unknown database", 1049, IsNotFound},
		{"missing table", 1146, IsNotFound},
		{"access denied", 1045, IsAuth},
		{"command denied", 1142, IsAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(&mysql.MySQLError{Number: tt.number, Message: "remote text"})
			if !tt.check(err) {
				t.Errorf("Classify(#%d) = %v, wrong class", tt.number, err)
			}
		})
	}
}

func TestClassifyByMessageSubstring(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		check func(error) bool
	}{
		{"already exists", "knowledge base products already exists", IsAlreadyExists},
		{"already exists upper case", "Engine ALREADY EXISTS", IsAlreadyExists},
		{"not found", "knowledge base products not found", IsNotFound},
		{"does not exist", "project retail does not exist", IsNotFound},
		{"doesn't exist", "Table 'products' doesn't exist", IsNotFound},
		{"access denied", "Access denied for user 'mindsdb'", IsAuth},
		{"authentication", "authentication failure talking to provider", IsAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(errors.New(tt.msg))
			if !tt.check(err) {
				t.Errorf("Classify(%q) = %v, wrong class", tt.msg, err)
			}
		})
	}
}

func TestClassifyKeepsRemoteTextVerbatim(t *testing.T) {
	err := Classify(errors.New("knowledge base products already exists"))
	if got := err.Error(); got != "already exists: knowledge base products already exists" {
		t.Errorf("Classify lost the remote text: %q", got)
	}
}

func TestClassifyPassthrough(t *testing.T) {
	orig := errors.New("connection reset by peer")
	err := Classify(orig)
	if err != orig {
		t.Errorf("unrecognized error should pass through unchanged, got %v", err)
	}
	if IsAlreadyExists(err) || IsNotFound(err) || IsAuth(err) {
		t.Errorf("unrecognized error misclassified: %v", err)
	}
}

func TestClassifyNil(t *testing.T) {
	if err := Classify(nil); err != nil {
		t.Errorf("Classify(nil) = %v", err)
	}
}

// Idempotent-create contract: a wrapped already-exists error stays
// recognizable however many layers wrap it.
func TestClassifyWrappedStaysRecognizable(t *testing.T) {
	err := Classify(&mysql.MySQLError{Number: 1050, Message: "products exists"})
	wrapped := fmt.Errorf("creating knowledge base: %w", err)
	if !IsAlreadyExists(wrapped) {
		t.Errorf("wrapped error lost its class: %v", wrapped)
	}
}
