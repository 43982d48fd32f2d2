package m3u8

import (
	"strconv"
	"strings"
)

// VersionValidator checks a playlist's lines against its declared
// EXT-X-VERSION before parsing begins. Implementations receive the
// trimmed-and-split line list and report every incompatibility found.
type VersionValidator interface {
	Validate(lines []string) []Violation
}

// versionRule flags a line that needs a higher protocol version than
// the playlist declares.
type versionRule struct {
	MinVersion int64
	Reason     string
	Matches    func(line string) bool
}

// versionValidator is the default rule set, derived from the
// compatibility table of RFC 8216 section 7.
type versionValidator struct {
	rules []versionRule
}

// NewVersionValidator returns the default version-compatibility
// validator. A playlist that declares no EXT-X-VERSION is accepted
// as-is.
func NewVersionValidator() VersionValidator {
	return &versionValidator{rules: []versionRule{
		{
			MinVersion: 2,
			Reason:     "EXT-X-KEY with an IV attribute requires version 2",
			Matches: func(line string) bool {
				return strings.HasPrefix(line, "#EXT-X-KEY:") && hasAttributeName(line, "IV")
			},
		},
		{
			MinVersion: 3,
			Reason:     "floating-point EXTINF duration requires version 3",
			Matches:    hasFloatExtInfDuration,
		},
		{
			MinVersion: 4,
			Reason:     "EXT-X-BYTERANGE requires version 4",
			Matches: func(line string) bool {
				return strings.HasPrefix(line, "#EXT-X-BYTERANGE:")
			},
		},
		{
			MinVersion: 4,
			Reason:     "EXT-X-I-FRAMES-ONLY requires version 4",
			Matches: func(line string) bool {
				return line == "#EXT-X-I-FRAMES-ONLY"
			},
		},
		{
			MinVersion: 5,
			Reason:     "EXT-X-KEY with KEYFORMAT or KEYFORMATVERSIONS requires version 5",
			Matches: func(line string) bool {
				return strings.HasPrefix(line, "#EXT-X-KEY:") &&
					(hasAttributeName(line, "KEYFORMAT") || hasAttributeName(line, "KEYFORMATVERSIONS"))
			},
		},
	}}
}

func (v *versionValidator) Validate(lines []string) []Violation {
	version, declared := declaredVersion(lines)
	if !declared {
		return nil
	}

	var violations []Violation
	iframesOnly := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "#EXT-X-I-FRAMES-ONLY" {
			iframesOnly = true
			break
		}
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, rule := range v.rules {
			if version < rule.MinVersion && rule.Matches(line) {
				violations = append(violations, Violation{
					LineNumber: i + 1,
					Line:       line,
					Reason:     rule.Reason,
				})
			}
		}
		// EXT-X-MAP's floor depends on whether the playlist is
		// I-frames only.
		if strings.HasPrefix(line, "#EXT-X-MAP:") {
			min := int64(6)
			reason := "EXT-X-MAP requires version 6"
			if iframesOnly {
				min = 5
				reason = "EXT-X-MAP in an I-frames-only playlist requires version 5"
			}
			if version < min {
				violations = append(violations, Violation{
					LineNumber: i + 1,
					Line:       line,
					Reason:     reason,
				})
			}
		}
	}
	return violations
}

func declaredVersion(lines []string) (int64, bool) {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "#EXT-X-VERSION:") {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(tagValue(line)), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// hasAttributeName reports whether the tag line carries the named
// attribute, matched on normalized attribute keys so quoting and case
// do not matter.
func hasAttributeName(line, name string) bool {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return false
	}
	attrs := parseAttributeList(line[idx+1:], nil)
	_, ok := attrs[normalizeAttributeKey(name)]
	return ok
}

func hasFloatExtInfDuration(line string) bool {
	if !strings.HasPrefix(line, "#EXTINF:") {
		return false
	}
	duration := tagValue(line)
	if comma := strings.IndexByte(duration, ','); comma >= 0 {
		duration = duration[:comma]
	}
	return strings.ContainsAny(duration, ".eE")
}
