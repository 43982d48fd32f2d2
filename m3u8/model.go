package m3u8

import (
	"encoding/json"
	"maps"
	"strconv"
	"time"
)

// ValueKind discriminates the dynamic type of an attribute Value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
)

// Value is a tagged variant holding a single parsed attribute value.
// Attribute lists are schema-typed: known attributes coerce to int or
// float, everything else stays a string exactly as it appeared on the
// wire (including surrounding quotes for unknown quoted attributes).
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flt  float64
}

// StringValue creates a string Value
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// IntValue creates an integer Value
func IntValue(i int64) Value {
	return Value{kind: ValueInt, num: i}
}

// FloatValue creates a float Value
func FloatValue(f float64) Value {
	return Value{kind: ValueFloat, flt: f}
}

// Kind returns the dynamic type of the value
func (v Value) Kind() ValueKind {
	return v.kind
}

// String returns the value rendered as a string
func (v Value) String() string {
	switch v.kind {
	case ValueInt:
		return strconv.FormatInt(v.num, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	default:
		return v.str
	}
}

// Int returns the integer value and whether the value is an integer
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == ValueInt
}

// Float returns the float value and whether the value is a float
func (v Value) Float() (float64, bool) {
	return v.flt, v.kind == ValueFloat
}

// Equal reports whether two values have the same kind and content
func (v Value) Equal(o Value) bool {
	return v == o
}

// MarshalJSON renders the value as its underlying type
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueInt:
		return json.Marshal(v.num)
	case ValueFloat:
		return json.Marshal(v.flt)
	default:
		return json.Marshal(v.str)
	}
}

// MarshalYAML renders the value as its underlying type
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case ValueInt:
		return v.num, nil
	case ValueFloat:
		return v.flt, nil
	default:
		return v.str, nil
	}
}

// Attributes is a parsed attribute list. Keys are normalized (ASCII
// lower-case, '-' mapped to '_', surrounding whitespace trimmed).
type Attributes map[string]Value

// GetString returns the named attribute rendered as a string
func (a Attributes) GetString(name string) (string, bool) {
	v, ok := a[name]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// GetInt returns the named attribute if it parsed as an integer
func (a Attributes) GetInt(name string) (int64, bool) {
	v, ok := a[name]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// GetFloat returns the named attribute if it parsed as a float
func (a Attributes) GetFloat(name string) (float64, bool) {
	v, ok := a[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Clone returns a shallow copy of the attribute set
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Equal reports whether two attribute sets hold the same entries
func (a Attributes) Equal(o Attributes) bool {
	return maps.Equal(a, o)
}

// Key is a parsed EXT-X-KEY or EXT-X-SESSION-KEY record. Values have
// their surrounding quotes stripped. A nil Key in PlaylistResult.Keys
// marks that at least one segment was unencrypted.
type Key map[string]string

// Equal reports whether two key records hold the same attributes
func (k Key) Equal(o Key) bool {
	if k == nil || o == nil {
		return k == nil && o == nil
	}
	return maps.Equal(k, o)
}

// Clone returns a copy of the key record
func (k Key) Clone() Key {
	if k == nil {
		return nil
	}
	return maps.Clone(k)
}

// Blackout carries the payload of a vendor EXT-X-BLACKOUT tag. Raw is
// empty when the tag had no value after the colon.
type Blackout struct {
	Raw string `json:"raw"`
}

// Part is a low-latency HLS partial segment, embedded in its parent
// segment via EXT-X-PART attribute lists rather than URI lines.
type Part struct {
	// Attributes holds the full parsed attribute set of the tag:
	// uri and byterange as strings, duration as a float, and the
	// independent/gap flags preserved verbatim as raw strings.
	Attributes      Attributes   `json:"attributes"`
	ProgramDateTime *time.Time   `json:"program_date_time,omitempty"`
	Dateranges      []Attributes `json:"dateranges,omitempty"`
	GapTag          *bool        `json:"gap_tag,omitempty"`
}

// Segment is a single media segment with the cross-line state that
// was pending when its URI line finalized it.
type Segment struct {
	URI                      string       `json:"uri"`
	Duration                 *float64     `json:"duration,omitempty"`
	Title                    *string      `json:"title,omitempty"`
	Byterange                *string      `json:"byterange,omitempty"`
	Bitrate                  *int64       `json:"bitrate,omitempty"`
	ProgramDateTime          *time.Time   `json:"program_date_time,omitempty"`
	CurrentProgramDateTime   *time.Time   `json:"current_program_date_time,omitempty"`
	CueIn                    bool         `json:"cue_in"`
	CueOut                   bool         `json:"cue_out"`
	CueOutStart              bool         `json:"cue_out_start"`
	CueOutExplicitlyDuration bool         `json:"cue_out_explicitly_duration"`
	SCTE35                   *string      `json:"scte35,omitempty"`
	OatclsSCTE35             *string      `json:"oatcls_scte35,omitempty"`
	SCTE35Duration           *string      `json:"scte35_duration,omitempty"`
	SCTE35Elapsedtime        *string      `json:"scte35_elapsedtime,omitempty"`
	AssetMetadata            Attributes   `json:"asset_metadata,omitempty"`
	Discontinuity            bool         `json:"discontinuity"`
	Key                      Key          `json:"key,omitempty"`
	InitSection              Attributes   `json:"init_section,omitempty"`
	Dateranges               []Attributes `json:"dateranges,omitempty"`
	GapTag                   *bool        `json:"gap_tag,omitempty"`
	Blackout                 *Blackout    `json:"blackout,omitempty"`
	Parts                    []Part       `json:"parts,omitempty"`
}

// VariantPlaylist is one entry of a master playlist: the URI line that
// followed an EXT-X-STREAM-INF tag plus that tag's attributes.
type VariantPlaylist struct {
	URI        string     `json:"uri"`
	StreamInfo Attributes `json:"stream_info"`
}

// IFramePlaylist is an EXT-X-I-FRAME-STREAM-INF entry. The URI comes
// from the tag's own attribute list, not a following line.
type IFramePlaylist struct {
	URI              string     `json:"uri"`
	IFrameStreamInfo Attributes `json:"iframe_stream_info"`
}

// ImagePlaylist is an EXT-X-IMAGE-STREAM-INF entry (trick-play images).
type ImagePlaylist struct {
	URI             string     `json:"uri"`
	ImageStreamInfo Attributes `json:"image_stream_info"`
}

// PlaylistResult is the aggregate produced by one parse call. The
// caller owns it once Parse returns.
type PlaylistResult struct {
	TargetDuration        *int64     `json:"targetduration,omitempty"`
	MediaSequence         *int64     `json:"media_sequence,omitempty"`
	DiscontinuitySequence *int64     `json:"discontinuity_sequence,omitempty"`
	Version               *int64     `json:"version,omitempty"`
	PlaylistType          *string    `json:"playlist_type"`
	AllowCache            *string    `json:"allow_cache,omitempty"`
	ProgramDateTime       *time.Time `json:"program_date_time,omitempty"`

	IsVariant             bool `json:"is_variant"`
	IsEndlist             bool `json:"is_endlist"`
	IsIFramesOnly         bool `json:"is_i_frames_only"`
	IsIndependentSegments bool `json:"is_independent_segments"`
	IsImagesOnly          bool `json:"is_images_only"`

	Playlists        []VariantPlaylist `json:"playlists"`
	Segments         []Segment         `json:"segments"`
	IFramePlaylists  []IFramePlaylist  `json:"iframe_playlists"`
	ImagePlaylists   []ImagePlaylist   `json:"image_playlists"`
	Tiles            []Attributes      `json:"tiles"`
	Media            []Attributes      `json:"media"`
	Keys             []Key             `json:"keys"`
	RenditionReports []Attributes      `json:"rendition_reports"`
	SessionData      []Attributes      `json:"session_data"`
	SessionKeys      []Key             `json:"session_keys"`
	SegmentMap       []Attributes      `json:"segment_map"`

	Skip    Attributes `json:"skip"`
	PartInf Attributes `json:"part_inf"`

	Start           Attributes `json:"start,omitempty"`
	ServerControl   Attributes `json:"server_control,omitempty"`
	PreloadHint     Attributes `json:"preload_hint,omitempty"`
	ContentSteering Attributes `json:"content_steering,omitempty"`
}

// newPlaylistResult creates a result with the documented defaults:
// media_sequence starts at 0 and is nulled once the playlist turns out
// to be a variant playlist; list and mapping fields start empty.
func newPlaylistResult() *PlaylistResult {
	zero := int64(0)
	return &PlaylistResult{
		MediaSequence:    &zero,
		Playlists:        []VariantPlaylist{},
		Segments:         []Segment{},
		IFramePlaylists:  []IFramePlaylist{},
		ImagePlaylists:   []ImagePlaylist{},
		Tiles:            []Attributes{},
		Media:            []Attributes{},
		Keys:             []Key{},
		RenditionReports: []Attributes{},
		SessionData:      []Attributes{},
		SessionKeys:      []Key{},
		SegmentMap:       []Attributes{},
		Skip:             Attributes{},
		PartInf:          Attributes{},
	}
}

// hasNullKeyMarker reports whether the keys list already carries the
// single null entry used to mark unencrypted segments.
func (r *PlaylistResult) hasNullKeyMarker() bool {
	for _, k := range r.Keys {
		if k == nil {
			return true
		}
	}
	return false
}

// hasKey reports whether an equal key record is already present.
func (r *PlaylistResult) hasKey(key Key) bool {
	for _, k := range r.Keys {
		if k != nil && k.Equal(key) {
			return true
		}
	}
	return false
}
