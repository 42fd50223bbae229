package intelligence

// IsRawRecordingPayload reports whether an arbitrary decoded JSON value looks
// like a vendor recording payload. Pure structural duck-typing: a non-null
// object carrying a title plus at least one recording-specific marker field.
func IsRawRecordingPayload(input interface{}) bool {
	obj, ok := input.(map[string]interface{})
	if !ok || obj == nil {
		return false
	}

	if !hasField(obj, "title") && !hasField(obj, "meeting_title") {
		return false
	}

	return hasField(obj, "recorded_by") ||
		hasField(obj, "calendar_invitees") ||
		hasField(obj, "share_url")
}

// IsCanonicalIntelligencePayload reports whether a decoded JSON value looks
// like canonical intelligence data ready for direct ingestion. Ambiguous
// payloads are resolved by callers trying the vendor check first.
func IsCanonicalIntelligencePayload(input interface{}) bool {
	obj, ok := input.(map[string]interface{})
	if !ok || obj == nil {
		return false
	}

	return hasField(obj, "sourceId") &&
		hasField(obj, "meetingDate") &&
		hasField(obj, "executiveSummary")
}

func hasField(obj map[string]interface{}, key string) bool {
	v, ok := obj[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
