package order

import (
	"strconv"
	"strings"
	"unicode"
)

// TransformOpenItems rewrites ad-hoc ("open") menu items into stable synthetic
// ids derived from their free-text name and first customization price, so two
// guests entering the same open item merge into one line instead of two.
// An item qualifies when its id starts with "{prefix}_" and it carries an
// inline name plus at least one customization; everything else passes through
// unchanged. An empty prefix disables the transformation.
func TransformOpenItems(items Items, prefix string) Items {
	transformed := make(Items, len(items))

	for id, line := range items {
		if prefix == "" || !strings.HasPrefix(id, prefix+"_") ||
			line.Name == "" || len(line.Customizations) == 0 {
			transformed[id] = line
			continue
		}

		price := line.Customizations[0].Price
		syntheticID := prefix + "_" + cleanOpenItemName(line.Name) + "_" +
			strconv.FormatFloat(price, 'f', -1, 64)

		transformed[syntheticID] = Line{
			Name:           line.Name,
			Customizations: line.Customizations,
		}
	}

	return transformed
}

// cleanOpenItemName lowercases the name, strips everything but letters,
// digits and spaces, then camel-cases the word boundaries. "Extra Lemon!!"
// becomes "extraLemon".
func cleanOpenItemName(name string) string {
	var b strings.Builder
	upperNext := false

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		case r == ' ':
			if b.Len() > 0 {
				upperNext = true
			}
		}
	}

	return b.String()
}
