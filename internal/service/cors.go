package service

import "strings"

// OriginRule is one configured cross-origin rule: either an exact origin or a
// wildcard pattern containing a single '*' (e.g. "https://*.example.com").
type OriginRule struct {
	exact   string
	prefix  string
	suffix  string
	pattern bool
}

// ParseOriginRules converts configured origin strings into rules. A string
// containing '*' becomes a pattern rule; anything else is an exact match.
func ParseOriginRules(origins []string) []OriginRule {
	rules := make([]OriginRule, 0, len(origins))
	for _, origin := range origins {
		if before, after, found := strings.Cut(origin, "*"); found {
			rules = append(rules, OriginRule{prefix: before, suffix: after, pattern: true})
		} else {
			rules = append(rules, OriginRule{exact: origin})
		}
	}
	return rules
}

// Match reports whether the request origin satisfies this rule.
func (r OriginRule) Match(origin string) bool {
	if !r.pattern {
		return origin == r.exact
	}
	if len(origin) < len(r.prefix)+len(r.suffix) {
		return false
	}
	return strings.HasPrefix(origin, r.prefix) && strings.HasSuffix(origin, r.suffix)
}

// MatchOrigin evaluates the rules in order; the first match wins.
func MatchOrigin(rules []OriginRule, origin string) bool {
	for _, rule := range rules {
		if rule.Match(origin) {
			return true
		}
	}
	return false
}
