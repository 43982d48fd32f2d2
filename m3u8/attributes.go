package m3u8

import (
	"strconv"
	"strings"
)

// attrType is the expected wire type of a known attribute.
type attrType int

const (
	attrString attrType = iota
	attrInt
	attrFloat
	attrQuotedString
	attrBandwidth
)

// attrSchema maps normalized attribute names to their expected types.
// Unlisted names default to attrString, which keeps the raw token
// untouched (quotes included). The quoted_string/string asymmetry is
// deliberate: only schema-listed quoted attributes lose their quotes.
type attrSchema map[string]attrType

func (s attrSchema) typeOf(name string) attrType {
	if s == nil {
		return attrString
	}
	t, ok := s[name]
	if !ok {
		return attrString
	}
	return t
}

// Per-tag attribute schemas. Names are in normalized form.
var (
	streamInfSchema = attrSchema{
		"codecs":            attrQuotedString,
		"audio":             attrQuotedString,
		"video":             attrQuotedString,
		"video_range":       attrQuotedString,
		"subtitles":         attrQuotedString,
		"pathway_id":        attrQuotedString,
		"stable_variant_id": attrQuotedString,
		"program_id":        attrInt,
		"bandwidth":         attrBandwidth,
		"average_bandwidth": attrInt,
		"frame_rate":        attrFloat,
		"hdcp_level":        attrString,
	}

	mediaSchema = attrSchema{
		"uri":                 attrQuotedString,
		"group_id":            attrQuotedString,
		"language":            attrQuotedString,
		"assoc_language":      attrQuotedString,
		"name":                attrQuotedString,
		"instream_id":         attrQuotedString,
		"characteristics":     attrQuotedString,
		"channels":            attrQuotedString,
		"stable_rendition_id": attrQuotedString,
		"thumbnails":          attrQuotedString,
		"image":               attrQuotedString,
	}

	partSchema = attrSchema{
		"uri":         attrQuotedString,
		"duration":    attrFloat,
		"independent": attrString,
		"gap":         attrString,
		"byterange":   attrString,
	}

	renditionReportSchema = attrSchema{
		"uri":       attrQuotedString,
		"last_msn":  attrInt,
		"last_part": attrInt,
	}

	skipSchema = attrSchema{
		"recently_removed_dateranges": attrQuotedString,
		"skipped_segments":            attrInt,
	}

	serverControlSchema = attrSchema{
		"can_block_reload":    attrString,
		"hold_back":           attrFloat,
		"part_hold_back":      attrFloat,
		"can_skip_until":      attrFloat,
		"can_skip_dateranges": attrString,
	}

	partInfSchema = attrSchema{
		"part_target": attrFloat,
	}

	preloadHintSchema = attrSchema{
		"uri":              attrQuotedString,
		"type":             attrString,
		"byterange_start":  attrInt,
		"byterange_length": attrInt,
	}

	daterangeSchema = attrSchema{
		"id":               attrQuotedString,
		"class":            attrQuotedString,
		"start_date":       attrQuotedString,
		"end_date":         attrQuotedString,
		"duration":         attrFloat,
		"planned_duration": attrFloat,
		"end_on_next":      attrString,
		"scte35_cmd":       attrString,
		"scte35_out":       attrString,
		"scte35_in":        attrString,
	}

	sessionDataSchema = attrSchema{
		"data_id":  attrQuotedString,
		"value":    attrQuotedString,
		"uri":      attrQuotedString,
		"language": attrQuotedString,
	}

	contentSteeringSchema = attrSchema{
		"server_uri": attrQuotedString,
		"pathway_id": attrQuotedString,
	}

	segmentMapSchema = attrSchema{
		"uri":       attrQuotedString,
		"byterange": attrQuotedString,
	}

	startSchema = attrSchema{
		"time_offset": attrFloat,
	}

	tilesSchema = attrSchema{
		"uri":        attrQuotedString,
		"resolution": attrString,
		"layout":     attrString,
		"duration":   attrFloat,
	}

	imageStreamInfSchema = attrSchema{
		"codecs":            attrQuotedString,
		"uri":               attrQuotedString,
		"pathway_id":        attrQuotedString,
		"stable_variant_id": attrQuotedString,
		"program_id":        attrInt,
		"bandwidth":         attrInt,
		"average_bandwidth": attrInt,
		"resolution":        attrString,
	}

	iframeStreamInfSchema = attrSchema{
		"codecs":            attrQuotedString,
		"uri":               attrQuotedString,
		"pathway_id":        attrQuotedString,
		"stable_variant_id": attrQuotedString,
		"program_id":        attrInt,
		"bandwidth":         attrInt,
		"average_bandwidth": attrInt,
		"hdcp_level":        attrString,
	}

	cueOutContSchema = attrSchema{
		"duration":    attrQuotedString,
		"elapsedtime": attrQuotedString,
		"scte35":      attrQuotedString,
	}

	cueOutSchema = attrSchema{
		"cue": attrQuotedString,
	}
)

func isAttrSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// normalizeAttributeKey lower-cases ASCII letters, maps '-' to '_' and
// trims surrounding whitespace.
func normalizeAttributeKey(s string) string {
	start := 0
	for start < len(s) && isAttrSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isAttrSpace(s[end-1]) {
		end--
	}
	var b strings.Builder
	b.Grow(end - start)
	for i := start; i < end; i++ {
		c := s[i]
		switch {
		case c == '-':
			c = '_'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 && isAttrSpace(s[end-1]) {
		end--
	}
	return s[:end]
}

// maxNumericToken caps numeric coercion: longer tokens stay strings.
const maxNumericToken = 63

// coerceAttr applies schema typing to a single scanned value. token is
// the full raw token (quotes included when present), inner is the
// token with surrounding quotes removed. Failed numeric coercions fall
// back to the dequoted text rather than aborting.
func coerceAttr(t attrType, token, inner string, quoted bool) Value {
	numeric := len(inner) <= maxNumericToken
	switch t {
	case attrQuotedString:
		if quoted {
			return StringValue(inner)
		}
		return StringValue(token)
	case attrInt:
		if numeric {
			if n, err := strconv.ParseInt(strings.TrimSpace(inner), 10, 64); err == nil {
				return IntValue(n)
			}
		}
		if quoted {
			return StringValue(inner)
		}
		return StringValue(token)
	case attrBandwidth:
		if numeric {
			if f, err := strconv.ParseFloat(inner, 64); err == nil {
				return IntValue(int64(f))
			}
		}
		if quoted {
			return StringValue(inner)
		}
		return StringValue(token)
	case attrFloat:
		if numeric {
			if f, err := strconv.ParseFloat(inner, 64); err == nil {
				return FloatValue(f)
			}
		}
		if quoted {
			return StringValue(inner)
		}
		return StringValue(token)
	default:
		return StringValue(token)
	}
}

// parseAttributeList scans a KEY=value,KEY2=value2 span into normalized
// key/value pairs, coercing schema-listed values. A nil schema leaves
// every value a raw string token. Duplicate keys overwrite. A key token
// with no '=' stores its own text under the empty-string key, which is
// how shorthand forms like ad-marker progress tokens come through.
func parseAttributeList(content string, schema attrSchema) Attributes {
	attrs := make(Attributes)
	i, n := 0, len(content)
	for i < n {
		for i < n && (isAttrSpace(content[i]) || content[i] == ',') {
			i++
		}
		if i >= n {
			break
		}

		keyStart := i
		for i < n && content[i] != '=' && content[i] != ',' {
			i++
		}
		rawKey := content[keyStart:i]

		if i >= n || content[i] != '=' {
			// Shorthand token: the key's own text is the value.
			attrs[""] = StringValue(trimTrailingSpace(rawKey))
			continue
		}
		i++ // skip '='

		key := normalizeAttributeKey(rawKey)
		if i < n && (content[i] == '"' || content[i] == '\'') {
			quote := content[i]
			tokenStart := i
			i++
			innerStart := i
			for i < n && content[i] != quote {
				i++
			}
			inner := content[innerStart:i]
			if i < n {
				i++ // include closing quote in the token
			}
			token := content[tokenStart:i]
			attrs[key] = coerceAttr(schema.typeOf(key), token, inner, true)
		} else {
			valStart := i
			for i < n && content[i] != ',' {
				i++
			}
			token := trimTrailingSpace(content[valStart:i])
			attrs[key] = coerceAttr(schema.typeOf(key), token, token, false)
		}
	}
	return attrs
}

// parseTagAttributes parses the attribute list of a full tag line,
// skipping the tag prefix and its colon.
func parseTagAttributes(line, tag string, schema attrSchema) Attributes {
	if !strings.HasPrefix(line, tag) {
		return Attributes{}
	}
	content := line[len(tag):]
	if strings.HasPrefix(content, ":") {
		content = content[1:]
	}
	return parseAttributeList(content, schema)
}

// removeQuotes strips one layer of matching single or double quotes.
func removeQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseKeyAttributes parses an encryption-key tag into a Key record,
// stripping quotes from every value.
func parseKeyAttributes(line, tag string) Key {
	attrs := parseTagAttributes(line, tag, nil)
	key := make(Key, len(attrs))
	for name, v := range attrs {
		key[name] = removeQuotes(v.String())
	}
	return key
}
