package common

import (
	"strings"

	"agoranet.io/agora/lib/errors"
)

var (
	TrueQueryStringValue  []string = []string{"true", "yes", "1"}
	FalseQueryStringValue []string = []string{"false", "no", "0"}
)

// InStringArray checks whether `s` is in `a` and returns its index.
func InStringArray(a []string, s string) (index int, found bool) {
	index = -1
	for i, n := range a {
		if n == s {
			index = i
			found = true
			return
		}
	}
	return
}

// ParseBoolQueryString will parse boolean value from url.Value.
// By default, `Reverse` is `false`. If 'true', '1', 'yes', it will be `true`
// If 'false', '0', 'no', it will be `false`
// If not `true` nor `false`, `errors.InvalidQueryString` will be occurred.
func ParseBoolQueryString(v string) (yesno bool, err error) {
	if _, yesno = InStringArray(TrueQueryStringValue, strings.ToLower(v)); yesno {
		return
	}
	if _, ok := InStringArray(FalseQueryStringValue, strings.ToLower(v)); ok {
		yesno = false
		return
	}

	err = errors.InvalidQueryString
	return
}
