package security

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
)

const maxSanitizePasses = 3

// Sanitizer strips markup from user input
type Sanitizer struct {
	policy *bluemonday.Policy
	log    *logrus.Entry
}

// NewSanitizer creates a sanitizer that removes every HTML tag
func NewSanitizer(log logrus.FieldLogger) *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy(), log: log.WithField("logger", "hospital.sanitizer")}
}

// String removes tags and leaves plain text, entities decoded
// Repeats until stable; input still changing after the last pass is
// returned entity-escaped so nested encodings never decode into markup
func (s *Sanitizer) String(in string) string {
	out := in
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	return s.policy.Sanitize(out)
}

// Value sanitizes every string inside a decoded JSON value
// Keys containing "password" are left untouched
func (s *Sanitizer) Value(v interface{}) (interface{}, bool) {
	switch val := v.(type) {
	case string:
		clean := s.String(val)
		return clean, clean != val
	case map[string]interface{}:
		changed := false
		for k, item := range val {
			if isSecretField(k) {
				continue
			}
			clean, c := s.Value(item)
			if c {
				s.log.WithField("field", k).Info("Sanitized input")
				val[k] = clean
				changed = true
			}
		}
		return val, changed
	case []interface{}:
		changed := false
		for i, item := range val {
			clean, c := s.Value(item)
			if c {
				val[i] = clean
				changed = true
			}
		}
		return val, changed
	default:
		return v, false
	}
}

// Query sanitizes every query parameter value
func (s *Sanitizer) Query(values url.Values) bool {
	changed := false
	for key, items := range values {
		if isSecretField(key) {
			continue
		}
		for i, item := range items {
			if clean := s.String(item); clean != item {
				s.log.WithField("param", key).Info("Sanitized query parameter")
				items[i] = clean
				changed = true
			}
		}
	}
	return changed
}

func isSecretField(name string) bool {
	return strings.Contains(strings.ToLower(name), "password")
}
