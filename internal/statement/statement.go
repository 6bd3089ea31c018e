// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package statement builds the textual statements sent to the knowledge-base
// platform. Builders return structured Statement values instead of raw
// interpolated strings: identifiers are validated, string values are escaped,
// and embedded credentials are masked in the loggable form.
package statement

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierRe matches one unqualified platform identifier.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// redactedMask replaces credential values in the loggable statement text.
const redactedMask = "'***'"

// Statement is one remote statement plus a credential-free form for logs.
type Statement struct {
	text     string
	redacted string
}

// Text returns the statement as sent to the platform.
func (s Statement) Text() string { return s.text }

// String returns the loggable form, with credentials masked. Use this for
// all logging; Text is for the wire only.
func (s Statement) String() string {
	if s.redacted != "" {
		return s.redacted
	}
	return s.text
}

// newStatement builds a Statement whose loggable form equals its wire form.
func newStatement(text string) Statement {
	return Statement{text: text}
}

// ValidateIdentifier rejects names the platform dialect would not accept as
// a bare identifier. Rejecting here keeps user input out of statement
// structure entirely.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier must not be empty")
	}
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: must match [A-Za-z_][A-Za-z0-9_]*", name)
	}
	return nil
}

// ValidateIdentifiers validates each name in order, naming the offender.
func ValidateIdentifiers(names []string) error {
	for _, n := range names {
		if err := ValidateIdentifier(n); err != nil {
			return err
		}
	}
	return nil
}

// QualifiedName joins an optional project namespace with a name, validating
// both parts.
func QualifiedName(project, name string) (string, error) {
	if err := ValidateIdentifier(name); err != nil {
		return "", err
	}
	if project == "" {
		return name, nil
	}
	if err := ValidateIdentifier(project); err != nil {
		return "", fmt.Errorf("invalid project: %w", err)
	}
	return project + "." + name, nil
}

// quote returns a single-quoted SQL string literal with embedded quotes
// doubled.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// quoteList renders a ['a', 'b'] style literal list.
func quoteList(vs []string) string {
	quoted := make([]string, len(vs))
	for i, v := range vs {
		quoted[i] = quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
