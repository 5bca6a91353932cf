package apperrors

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

// dupKeyPattern extracts the conflicting field and value from the server's
// duplicate key message, e.g. `dup key: { name: "Iphone 13" }`.
var (
	dupKeyPattern   = regexp.MustCompile(`dup key: \{ (\w+): "([^"]*)"`)
	dupFieldPattern = regexp.MustCompile(`dup key: \{ (\w+):`)
)

// FromMongo translates a store error into an operational error. It is the
// single boundary between the driver and the error taxonomy: duplicate key
// conflicts become validation errors naming the duplicate value, missing
// documents become not-found errors, and anything else passes through
// untranslated for the handler layer to log and collapse.
func FromMongo(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	if mongo.IsDuplicateKeyError(err) {
		return BadRequest("Unique Parameter", duplicateDescription(err))
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound("Resource not found")
	}

	return err
}

// duplicateDescription parses the conflicting value out of the server
// message. Inserts report the conflict as a WriteException and updates as a
// CommandError; matching the rendered error covers both shapes.
func duplicateDescription(err error) string {
	message := err.Error()
	if m := dupKeyPattern.FindStringSubmatch(message); m != nil {
		return m[2] + " already exists"
	}
	if m := dupFieldPattern.FindStringSubmatch(message); m != nil {
		return m[1] + " already exists"
	}
	return "duplicate value already exists"
}
