package repair

import (
	"unicode/utf8"

	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/niem"
)

// truncateField replaces field's text with the removal sentinel when it is
// longer than limit runes.
func truncateField(field *niem.Element, limit int) *errors.FieldTooLongError {
	n := utf8.RuneCountInString(field.Text)
	if n <= limit {
		return nil
	}
	original := field.Text
	field.Text = constants.RemovedValue
	return &errors.FieldTooLongError{
		Field:    field.Name,
		Length:   n,
		Limit:    limit,
		Original: original,
	}
}
