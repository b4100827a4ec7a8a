package forms

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descPolicyOnce sync.Once
	descPolicy     *bluemonday.Policy
)

// sanitizeDescription strips everything but harmless inline markup from
// section descriptions and field hints, which feature modules may author
// with basic formatting.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		descPolicy = policy
	})
	return descPolicy
}
