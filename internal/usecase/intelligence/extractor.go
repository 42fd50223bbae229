package intelligence

import (
	"regexp"
	"strings"

	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

// consumerDomains are common email providers that never identify an
// organization.
var consumerDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"icloud.com":     true,
	"protonmail.com": true,
}

// orgTLDSuffixes are stripped from a domain before building a display name
var orgTLDSuffixes = []string{".com", ".io", ".ae", ".co", ".org", ".net", ".ai"}

// titleSeparators splits a meeting title into candidate participant name
// fragments: "Hassan x Jake", "Acme | Omniscope", "Call with Sara and Tom".
var titleSeparators = regexp.MustCompile(`(?i)\s+x\s+|\s+vs\.?\s+|\s+with\s+|\s+and\s+|\s*[&,|]\s*`)

var nonAlpha = regexp.MustCompile(`[^a-zA-Z]`)

// ExtractParticipants derives the ordered set of distinct participant names
// from a recording payload. Per invitee the best available identity wins:
// a voice-verified transcript speaker match, then a proper display name, then
// a name resolved from the email local part against title fragments, then a
// humanized email local part. Transcript speakers and the recorder are
// unioned in. Distinctness is exact string equality.
func ExtractParticipants(payload *fathom.RawRecordingPayload) []string {
	seen := make(map[string]bool)
	var names []string

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	title := payload.BestTitle()

	for _, invitee := range payload.CalendarInvitees {
		switch {
		case invitee.MatchedSpeakerDisplayName != "":
			add(invitee.MatchedSpeakerDisplayName)
		case hasProperName(invitee):
			add(invitee.Name)
		case invitee.Email != "":
			add(resolveNameFromEmail(invitee.Email, title))
		}
	}

	for _, entry := range payload.Transcript {
		add(entry.Speaker.DisplayName)
	}

	if payload.RecordedBy != nil {
		add(payload.RecordedBy.Name)
	}

	return names
}

// hasProperName reports whether an invitee carries a display name that is not
// just their email address repeated.
func hasProperName(invitee fathom.CalendarInvitee) bool {
	name := strings.TrimSpace(invitee.Name)
	if name == "" {
		return false
	}
	return !strings.EqualFold(name, invitee.Email)
}

// resolveNameFromEmail resolves a bare email into a human name. The alphabetic
// local part is matched against title fragments by 3-character prefix in
// either direction; a match means the title fragment is the person's name.
// Without a match the local part is humanized.
func resolveNameFromEmail(email, meetingTitle string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	alphaLocal := strings.ToLower(nonAlpha.ReplaceAllString(local, ""))

	if alphaLocal != "" && meetingTitle != "" {
		for _, fragment := range titleSeparators.Split(meetingTitle, -1) {
			fragment = strings.TrimSpace(fragment)
			if fragment == "" {
				continue
			}
			if prefixMatch(alphaLocal, strings.ToLower(nonAlpha.ReplaceAllString(fragment, ""))) {
				return fragment
			}
		}
	}

	return humanizeLocalPart(local)
}

// prefixMatch reports a shared 3-character prefix in either direction
func prefixMatch(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return strings.HasPrefix(a, b[:3]) || strings.HasPrefix(b, a[:3])
}

// humanizeLocalPart turns "j.doe_42" into "J Doe"
func humanizeLocalPart(local string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		if r == '.' || r == '_' || r == '-' || r == '+' {
			return ' '
		}
		return r
	}, local)

	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

// ExtractOrganizations derives the ordered set of distinct organization names
// from external invitee email domains, skipping consumer providers.
func ExtractOrganizations(payload *fathom.RawRecordingPayload) []string {
	seen := make(map[string]bool)
	var orgs []string

	for _, invitee := range payload.CalendarInvitees {
		if !invitee.IsExternal || invitee.EmailDomain == "" {
			continue
		}
		domain := strings.ToLower(strings.TrimSpace(invitee.EmailDomain))
		if consumerDomains[domain] {
			continue
		}
		name := organizationNameFromDomain(domain)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		orgs = append(orgs, name)
	}

	return orgs
}

// organizationNameFromDomain turns "acme-capital.io" into "Acme Capital"
func organizationNameFromDomain(domain string) string {
	for _, suffix := range orgTLDSuffixes {
		if strings.HasSuffix(domain, suffix) {
			domain = strings.TrimSuffix(domain, suffix)
			break
		}
	}

	var words []string
	for _, segment := range strings.FieldsFunc(domain, func(r rune) bool {
		return r == '.' || r == '-'
	}) {
		words = append(words, titleCase(segment))
	}
	return strings.Join(words, " ")
}

// DeterminePrimaryLead identifies the internal owner of the session. Prefers
// the recorder's name, falls back to the first non-external invitee, then to
// "Unknown". Never fails.
func DeterminePrimaryLead(payload *fathom.RawRecordingPayload) string {
	if payload.RecordedBy != nil && strings.TrimSpace(payload.RecordedBy.Name) != "" {
		return strings.TrimSpace(payload.RecordedBy.Name)
	}

	for _, invitee := range payload.CalendarInvitees {
		if !invitee.IsExternal && strings.TrimSpace(invitee.Name) != "" {
			return strings.TrimSpace(invitee.Name)
		}
	}

	return "Unknown"
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
