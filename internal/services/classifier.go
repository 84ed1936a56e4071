package services

import (
	"regexp"

	"ctfwatch/internal/domain"
)

// tokenPattern matches a join token: at least four contiguous alphanumeric
// characters immediately following one of the known markers. Markers are
// case-insensitive; optional whitespace may separate marker and token.
var tokenPattern = regexp.MustCompile(`(?i)(?:token:|code:|\?code=|access code)\s*([A-Za-z0-9]{4,})`)

// Classify decides whether one event warrants a notification.
//
// Open and Unknown access both alert unconditionally: missing accessibility
// information is treated as permissive, trading false positives for never
// missing a public event. Restricted events alert only when a token can be
// extracted from the free-text fields, first match by field order then by
// position within the field. Restricted events without a token are skipped,
// and skips are never cached, so an edited description is re-evaluated on
// every run.
func Classify(flag domain.AccessFlag, textFields []string) domain.Decision {
	if flag == domain.AccessOpen || flag == domain.AccessUnknown {
		return domain.Decision{Kind: domain.DecisionAlertOpen}
	}
	for _, text := range textFields {
		if m := tokenPattern.FindStringSubmatch(text); m != nil {
			return domain.Decision{Kind: domain.DecisionAlertToken, Token: m[1]}
		}
	}
	return domain.Decision{Kind: domain.DecisionSkip}
}
