package validate

import (
	"errors"
	"regexp"
)

const (
	// MaxInterests is the most interests a single publish may target.
	MaxInterests = 100
	// MaxUserIDs is the most users a single publish may target.
	MaxUserIDs = 1000
	// MaxInterestLength and MaxUserIDLength are measured in bytes.
	MaxInterestLength = 164
	MaxUserIDLength   = 164

	interestPunctuation = "_-=@,.;"
)

var interestPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-=@,.;]+$`)

// listRule describes one targeting list.
type listRule struct {
	field     string
	noun      string
	maxCount  int
	maxLength int
	charset   *regexp.Regexp
}

var (
	interestRule = listRule{
		field:     "interests",
		noun:      "interest",
		maxCount:  MaxInterests,
		maxLength: MaxInterestLength,
		charset:   interestPattern,
	}
	userIDRule = listRule{
		field:     "userIds",
		noun:      "user id",
		maxCount:  MaxUserIDs,
		maxLength: MaxUserIDLength,
	}
)

// Interests checks a publish's interest list and returns it unchanged when valid.
// A nil slice is treated as a missing list, an empty one as a publish with no target.
func Interests(interests []string) ([]string, error) {
	if err := interestRule.check(interests); err != nil {
		return nil, err
	}
	return interests, nil
}

// UserIDs checks a publish's user id list and returns it unchanged when valid.
func UserIDs(userIDs []string) ([]string, error) {
	if err := userIDRule.check(userIDs); err != nil {
		return nil, err
	}
	return userIDs, nil
}

// UserID checks a single user id, as used for token issuance and user deletion.
func UserID(userID string) error {
	if userID == "" {
		return &Error{Kind: EmptyString, Field: "userId", Index: -1}
	}
	if len(userID) > MaxUserIDLength {
		return &Error{Kind: TooLong, Field: "userId", Value: userID, Index: -1, Limit: MaxUserIDLength}
	}
	return nil
}

// PublishBody checks the caller's notification payload.
func PublishBody(body map[string]any) error {
	if body == nil {
		return &Error{Kind: WrongType, Field: "publishBody", Index: -1, Expected: "a JSON object"}
	}
	return nil
}

// IsKind reports whether err is a validation failure of kind k.
func IsKind(err error, k Kind) bool {
	var vErr *Error
	return errors.As(err, &vErr) && vErr.Kind == k
}

func (r listRule) check(items []string) error {
	// List-level checks come first; no element is inspected unless they pass.
	if items == nil {
		return &Error{Kind: WrongType, Field: r.field, Noun: r.noun, Index: -1, Expected: "an array"}
	}
	if len(items) == 0 {
		return &Error{Kind: TooFew, Field: r.field, Noun: r.noun, Index: -1}
	}
	if len(items) > r.maxCount {
		return &Error{Kind: TooMany, Field: r.field, Noun: r.noun, Index: -1, Limit: r.maxCount, Count: len(items)}
	}

	for i, item := range items {
		switch {
		case item == "":
			return &Error{Kind: EmptyString, Field: r.field, Noun: r.noun, Index: i}
		case len(item) > r.maxLength:
			return &Error{Kind: TooLong, Field: r.field, Noun: r.noun, Value: item, Index: i, Limit: r.maxLength}
		case r.charset != nil && !r.charset.MatchString(item):
			return &Error{Kind: ForbiddenCharacter, Field: r.field, Noun: r.noun, Value: item, Index: i}
		}
	}
	return nil
}
