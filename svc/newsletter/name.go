package newsletter

import "github.com/dmitrymomot/newsletter/pkg/validator"

// MaxNameLength is the maximum subscriber name length in grapheme clusters.
const MaxNameLength = 60

const forbiddenNameChars = `/\()"<>{}`

// SubscriberName is a validated display name. The zero value is not valid;
// use ParseName.
type SubscriberName struct {
	value string
}

// ParseName validates raw as a subscriber name. It must contain something
// other than whitespace, be valid UTF-8 without control characters, be at most
// MaxNameLength characters long and avoid / \ ( ) " < > { }. The input is kept
// as given, untrimmed.
func ParseName(raw string) (SubscriberName, error) {
	if err := validator.Apply(
		validator.RequiredString("name", raw),
		validator.PlainText("name", raw),
		validator.MaxGraphemes("name", raw, MaxNameLength),
		validator.ExcludesRunes("name", raw, forbiddenNameChars),
	); err != nil {
		return SubscriberName{}, err
	}
	return SubscriberName{value: raw}, nil
}

func (n SubscriberName) String() string {
	return n.value
}
