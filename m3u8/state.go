package m3u8

import "time"

// ParseState is the transient context threaded between playlist lines
// during a single parse call. It is created with the result, mutated
// by every tag handler, and discarded when parsing completes, except
// for the terminal flush of a still-pending segment.
//
// A custom tag handler receives the same ParseState the built-in
// handlers use, so expectation-flag changes it makes are honored by
// the dispatcher on the following lines.
type ParseState struct {
	// ExpectSegment is set after EXTINF or EXT-X-BYTERANGE: the next
	// non-comment line finalizes the pending segment.
	ExpectSegment bool
	// ExpectPlaylist is set after EXT-X-STREAM-INF: the next
	// non-comment line finalizes a variant playlist entry.
	ExpectPlaylist bool

	// Segment is the pending segment being assembled across lines.
	Segment *Segment
	// StreamInfo holds EXT-X-STREAM-INF attributes awaiting their URI.
	StreamInfo Attributes

	// Ad-break bookkeeping.
	CueOut                    bool
	CueIn                     bool
	CueOutStart               bool
	CueOutExplicitlyDuration  bool
	CurrentCueOutSCTE35       *string
	CurrentCueOutOatclsSCTE35 *string
	CurrentCueOutDuration     *string
	CurrentCueOutElapsedtime  *string
	AssetMetadata             Attributes

	// ProgramDateTime is a one-shot value consumed by the next
	// segment; CurrentProgramDateTime is a running clock advanced by
	// each finalized segment's or part's duration.
	ProgramDateTime        *time.Time
	CurrentProgramDateTime *time.Time

	// CurrentKey is the most recent EXT-X-KEY record. A non-nil empty
	// map still counts as an active key.
	CurrentKey Key
	// CurrentSegmentMap is the most recent EXT-X-MAP attribute set.
	CurrentSegmentMap Attributes

	// Dateranges accumulate until the next segment or part consumes
	// them.
	Dateranges []Attributes

	// One-shot flags consumed by the next segment.
	Discontinuity bool
	Gap           bool
	Blackout      *Blackout
}

// getOrCreateSegment returns the pending segment, creating it when a
// tag arrives before any EXTINF.
func (st *ParseState) getOrCreateSegment() *Segment {
	if st.Segment == nil {
		st.Segment = &Segment{}
	}
	return st.Segment
}

// clearCueOutCarryOver drops the five ad-break payload fields so they
// do not leak into segments after the break closed.
func (st *ParseState) clearCueOutCarryOver() {
	st.CurrentCueOutSCTE35 = nil
	st.CurrentCueOutOatclsSCTE35 = nil
	st.CurrentCueOutDuration = nil
	st.CurrentCueOutElapsedtime = nil
	st.AssetMetadata = nil
}
