// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct-tag rules live on the
// section content types.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateSectionContent checks that a content payload satisfies its kind's
// schema rules. Called on every external boundary (AI output, imports)
// before a payload may enter the content store; editor-authored partial
// content is not validated, since rendering tolerates it.
func ValidateSectionContent(content SectionContent) error {
	switch c := content.(type) {
	case UnknownContent:
		return fmt.Errorf("unknown section type cannot be validated")
	case nil:
		return fmt.Errorf("missing section content")
	default:
		if err := validate.Struct(c); err != nil {
			if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
				ve := ves[0]
				return fmt.Errorf("invalid section content: field %s failed rule %q", ve.Namespace(), ve.Tag())
			}
			return fmt.Errorf("invalid section content: %w", err)
		}
		return nil
	}
}
