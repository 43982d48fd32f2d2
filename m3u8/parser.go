package m3u8

import (
	"strconv"
	"strings"
	"time"

	"github.com/streamtools/m3u8-common/logging"
)

// CustomTagFunc is a caller-supplied hook offered every comment line
// before built-in dispatch. It may read the result and read or mutate
// the state's expectation flags. Returning true marks the line as
// handled and skips the built-in handler for it.
type CustomTagFunc func(line string, lineNumber int, result *PlaylistResult, state *ParseState) bool

// TagHandler defines how to handle a specific playlist tag
type TagHandler struct {
	Name        string
	Handler     func(line string, ctx *ParseContext) error
	Description string
}

// ParseContext carries the per-parse mutable context handed to every
// tag handler.
type ParseContext struct {
	Result     *PlaylistResult
	State      *ParseState
	LineNumber int
	Strict     bool
}

// Parser parses M3U8 playlist documents into PlaylistResult values.
// A Parser is stateless between calls; distinct parses may run fully
// in parallel.
type Parser struct {
	tagHandlers map[string]TagHandler
	config      *ParserConfig
	validator   VersionValidator
	logger      logging.Logger
}

// NewParser creates a parser with the default configuration and all
// standard tag handlers registered.
func NewParser() *Parser {
	return NewParserWithConfig(nil)
}

// NewParserWithConfig creates a parser with custom configuration
func NewParserWithConfig(config *ParserConfig) *Parser {
	if config == nil {
		config = DefaultConfig().Parser
	}

	validator := config.Validator
	if validator == nil {
		validator = NewVersionValidator()
	}

	parser := &Parser{
		tagHandlers: make(map[string]TagHandler),
		config:      config,
		validator:   validator,
		logger:      logging.GetGlobalLogger(),
	}
	parser.registerDefaultTagHandlers()
	return parser
}

// SetLogger sets a custom logger
func (p *Parser) SetLogger(logger logging.Logger) {
	p.logger = logger
}

// RegisterTagHandler registers a new tag handler, replacing any
// existing handler for the same tag name.
func (p *Parser) RegisterTagHandler(handler TagHandler) {
	p.tagHandlers[handler.Name] = handler
}

// GetRegisteredTags returns the names of all registered tag handlers
func (p *Parser) GetRegisteredTags() []string {
	tags := make([]string, 0, len(p.tagHandlers))
	for tag := range p.tagHandlers {
		tags = append(tags, tag)
	}
	return tags
}

// Parse parses a complete playlist document. It returns either a
// complete, consistent result or an error, never both.
func (p *Parser) Parse(content string) (*PlaylistResult, error) {
	if p.config.Strict {
		if violations := p.validator.Validate(splitTrimmedLines(content)); len(violations) > 0 {
			return nil, &ValidationError{Violations: violations}
		}
	}

	result := newPlaylistResult()
	state := &ParseState{}
	ctx := &ParseContext{
		Result: result,
		State:  state,
		Strict: p.config.Strict,
	}

	scanner := newLineScanner(content)
	for scanner.scan() {
		line := scanner.text()
		ctx.LineNumber = scanner.lineNumber()

		if line[0] == '#' {
			if p.config.CustomTagParser != nil && p.config.CustomTagParser(line, ctx.LineNumber, result, state) {
				continue
			}
			tag := line
			if idx := strings.IndexByte(line, ':'); idx >= 0 {
				tag = line[:idx]
			}
			if handler, ok := p.tagHandlers[tag]; ok {
				if err := handler.Handler(line, ctx); err != nil {
					return nil, err
				}
			} else if p.config.Strict {
				return nil, NewParseError(ctx.LineNumber, line)
			}
			continue
		}

		switch {
		case state.ExpectSegment:
			finalizeSegment(line, result, state)
		case state.ExpectPlaylist:
			finalizeVariantPlaylist(line, result, state)
		case p.config.Strict:
			return nil, NewParseError(ctx.LineNumber, line)
		}
	}

	// Flush a segment still pending at end of input.
	if state.Segment != nil {
		result.Segments = append(result.Segments, *state.Segment)
	}

	p.logger.Debug("parsed playlist", logging.Fields{
		"segments":   len(result.Segments),
		"playlists":  len(result.Playlists),
		"is_variant": result.IsVariant,
	})
	return result, nil
}

// Parse parses a playlist document with the default configuration
func Parse(content string) (*PlaylistResult, error) {
	return NewParser().Parse(content)
}

// lineScanner walks the trimmed input once, yielding trimmed non-empty
// logical lines. Line numbers are 1-based and count blank lines, so
// strict-mode errors match implementations that keep them.
type lineScanner struct {
	content string
	pos     int
	current string
	lineno  int
}

func newLineScanner(content string) *lineScanner {
	return &lineScanner{content: strings.TrimSpace(content)}
}

func (s *lineScanner) scan() bool {
	for s.pos < len(s.content) {
		start := s.pos
		i := start
		for i < len(s.content) && s.content[i] != '\n' && s.content[i] != '\r' {
			i++
		}
		raw := s.content[start:i]

		if i < len(s.content) {
			if s.content[i] == '\r' && i+1 < len(s.content) && s.content[i+1] == '\n' {
				s.pos = i + 2
			} else {
				s.pos = i + 1
			}
		} else {
			s.pos = i
		}

		s.lineno++
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		s.current = trimmed
		return true
	}
	return false
}

func (s *lineScanner) text() string {
	return s.current
}

func (s *lineScanner) lineNumber() int {
	return s.lineno
}

// splitTrimmedLines trims the whole input once and splits it into raw
// lines, preserving internal blanks so line indices line up with the
// scanner's numbering. Used by the strict-mode pre-check.
func splitTrimmedLines(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c != '\n' && c != '\r' {
			continue
		}
		lines = append(lines, content[start:i])
		if c == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	lines = append(lines, content[start:])
	return lines
}

// tagValue returns the text after the tag's colon, or "" when the tag
// carries no value.
func tagValue(line string) string {
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		return line[idx+1:]
	}
	return ""
}

// parseTagInt parses a base-10 scalar tag value. The bool result is
// false on malformed input, which non-strict parsing ignores.
func parseTagInt(line string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(tagValue(line)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// dateTimeLayouts covers the ISO-8601 forms playlists carry in
// EXT-X-PROGRAM-DATE-TIME and that the reference parser accepts.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
	"2006-01-02",
}

func parseDateTime(value string) (time.Time, error) {
	var err error
	for _, layout := range dateTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// finalizeSegment completes the pending segment on its URI line,
// moving every one-shot state field into it and appending it to the
// result.
func finalizeSegment(uri string, result *PlaylistResult, state *ParseState) {
	segment := state.Segment
	if segment == nil {
		segment = &Segment{}
	}
	state.Segment = nil

	segment.URI = uri

	if state.ProgramDateTime != nil {
		segment.ProgramDateTime = state.ProgramDateTime
		state.ProgramDateTime = nil
	}
	if state.CurrentProgramDateTime != nil {
		current := *state.CurrentProgramDateTime
		segment.CurrentProgramDateTime = &current
		if segment.Duration != nil {
			advanced := current.Add(secondsToDuration(*segment.Duration))
			state.CurrentProgramDateTime = &advanced
		}
	}

	segment.CueIn = state.CueIn
	state.CueIn = false

	cueOut := state.CueOut
	segment.CueOut = cueOut
	segment.CueOutStart = state.CueOutStart
	state.CueOutStart = false
	segment.CueOutExplicitlyDuration = state.CueOutExplicitlyDuration
	state.CueOutExplicitlyDuration = false

	// Ad-break payload rides along while the break is open; once
	// cue_out is no longer set it must not leak into later segments.
	segment.SCTE35 = state.CurrentCueOutSCTE35
	segment.OatclsSCTE35 = state.CurrentCueOutOatclsSCTE35
	segment.SCTE35Duration = state.CurrentCueOutDuration
	segment.SCTE35Elapsedtime = state.CurrentCueOutElapsedtime
	segment.AssetMetadata = state.AssetMetadata
	if !cueOut {
		state.clearCueOutCarryOver()
	}
	state.CueOut = false

	segment.Discontinuity = state.Discontinuity
	state.Discontinuity = false

	if state.CurrentKey != nil {
		segment.Key = state.CurrentKey.Clone()
	} else if !result.hasNullKeyMarker() {
		// A single null entry marks that some segment was unencrypted.
		result.Keys = append(result.Keys, nil)
	}

	if len(state.CurrentSegmentMap) > 0 {
		segment.InitSection = state.CurrentSegmentMap.Clone()
	}

	segment.Dateranges = state.Dateranges
	state.Dateranges = nil

	if state.Gap {
		gap := true
		segment.GapTag = &gap
		state.Gap = false
	}
	if state.Blackout != nil {
		segment.Blackout = state.Blackout
		state.Blackout = nil
	}

	result.Segments = append(result.Segments, *segment)
	state.ExpectSegment = false
}

// finalizeVariantPlaylist pairs a URI line with the pending
// EXT-X-STREAM-INF attributes.
func finalizeVariantPlaylist(uri string, result *PlaylistResult, state *ParseState) {
	streamInfo := state.StreamInfo
	if streamInfo == nil {
		streamInfo = Attributes{}
	}
	state.StreamInfo = nil

	result.Playlists = append(result.Playlists, VariantPlaylist{
		URI:        uri,
		StreamInfo: streamInfo,
	})
	state.ExpectPlaylist = false
}

// finalizePart appends an EXT-X-PART to the pending segment. Parts are
// complete on their own line, so the program-date-time cursor advances
// immediately by the part's duration.
func finalizePart(attrs Attributes, state *ParseState) {
	part := Part{Attributes: attrs}

	if state.CurrentProgramDateTime != nil {
		current := *state.CurrentProgramDateTime
		part.ProgramDateTime = &current
		if duration, ok := attrs.GetFloat("duration"); ok {
			advanced := current.Add(secondsToDuration(duration))
			state.CurrentProgramDateTime = &advanced
		}
	}

	part.Dateranges = state.Dateranges
	state.Dateranges = nil

	if state.Gap {
		gap := true
		part.GapTag = &gap
		state.Gap = false
	}

	segment := state.getOrCreateSegment()
	segment.Parts = append(segment.Parts, part)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
