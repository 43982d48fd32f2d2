package m3u8

import (
	"strconv"
	"strings"
)

// registerDefaultTagHandlers wires up the standard playlist tags. Each
// handler owns one tag; callers can override any of them through
// RegisterTagHandler before parsing.
func (p *Parser) registerDefaultTagHandlers() {
	handlers := []TagHandler{
		{
			Name:        "#EXTM3U",
			Handler:     func(line string, ctx *ParseContext) error { return nil },
			Description: "Playlist file header",
		},
		{
			Name:        "#EXTINF",
			Handler:     handleExtInf,
			Description: "Segment duration and title",
		},
		{
			Name:        "#EXT-X-TARGETDURATION",
			Handler:     handleTargetDuration,
			Description: "Maximum segment duration",
		},
		{
			Name:        "#EXT-X-MEDIA-SEQUENCE",
			Handler:     handleMediaSequence,
			Description: "Sequence number of the first segment",
		},
		{
			Name:        "#EXT-X-DISCONTINUITY-SEQUENCE",
			Handler:     handleDiscontinuitySequence,
			Description: "Discontinuity sequence number",
		},
		{
			Name:        "#EXT-X-VERSION",
			Handler:     handleVersion,
			Description: "Playlist protocol version",
		},
		{
			Name:        "#EXT-X-PLAYLIST-TYPE",
			Handler:     handlePlaylistType,
			Description: "Playlist type (VOD or EVENT)",
		},
		{
			Name:        "#EXT-X-ALLOW-CACHE",
			Handler:     handleAllowCache,
			Description: "Legacy cache permission",
		},
		{
			Name:        "#EXT-X-ENDLIST",
			Handler:     handleEndlist,
			Description: "No more segments will be added",
		},
		{
			Name:        "#EXT-X-I-FRAMES-ONLY",
			Handler:     handleIFramesOnly,
			Description: "Playlist contains only I-frames",
		},
		{
			Name:        "#EXT-X-INDEPENDENT-SEGMENTS",
			Handler:     handleIndependentSegments,
			Description: "All segments are independently decodable",
		},
		{
			Name:        "#EXT-X-IMAGES-ONLY",
			Handler:     handleImagesOnly,
			Description: "Playlist contains only trick-play images",
		},
		{
			Name:        "#EXT-X-DISCONTINUITY",
			Handler:     handleDiscontinuity,
			Description: "Encoding discontinuity before the next segment",
		},
		{
			Name:        "#EXT-X-GAP",
			Handler:     handleGap,
			Description: "Next segment is unavailable",
		},
		{
			Name:        "#EXT-X-PROGRAM-DATE-TIME",
			Handler:     handleProgramDateTime,
			Description: "Wall-clock time of the next segment",
		},
		{
			Name:        "#EXT-X-KEY",
			Handler:     handleKey,
			Description: "Encryption key for following segments",
		},
		{
			Name:        "#EXT-X-SESSION-KEY",
			Handler:     handleSessionKey,
			Description: "Session-level encryption key",
		},
		{
			Name:        "#EXT-X-MAP",
			Handler:     handleMap,
			Description: "Media initialization section",
		},
		{
			Name:        "#EXT-X-STREAM-INF",
			Handler:     handleStreamInf,
			Description: "Variant stream attributes",
		},
		{
			Name:        "#EXT-X-I-FRAME-STREAM-INF",
			Handler:     handleIFrameStreamInf,
			Description: "I-frame variant stream",
		},
		{
			Name:        "#EXT-X-IMAGE-STREAM-INF",
			Handler:     handleImageStreamInf,
			Description: "Trick-play image variant stream",
		},
		{
			Name:        "#EXT-X-MEDIA",
			Handler:     handleMedia,
			Description: "Alternative rendition",
		},
		{
			Name:        "#EXT-X-BYTERANGE",
			Handler:     handleByterange,
			Description: "Sub-range of the next segment's resource",
		},
		{
			Name:        "#EXT-X-BITRATE",
			Handler:     handleBitrate,
			Description: "Average bitrate of following segments",
		},
		{
			Name:        "#EXT-X-CUE-OUT",
			Handler:     handleCueOut,
			Description: "Ad break start",
		},
		{
			Name:        "#EXT-X-CUE-OUT-CONT",
			Handler:     handleCueOutCont,
			Description: "Ad break continuation",
		},
		{
			Name:        "#EXT-X-CUE-IN",
			Handler:     handleCueIn,
			Description: "Ad break end",
		},
		{
			Name:        "#EXT-X-CUE-SPAN",
			Handler:     handleCueSpan,
			Description: "Ad break span marker",
		},
		{
			Name:        "#EXT-OATCLS-SCTE35",
			Handler:     handleOatclsSCTE35,
			Description: "Dense SCTE-35 ad signal",
		},
		{
			Name:        "#EXT-X-ASSET",
			Handler:     handleAsset,
			Description: "Ad break asset metadata",
		},
		{
			Name:        "#EXT-X-BLACKOUT",
			Handler:     handleBlackout,
			Description: "Content blackout marker",
		},
		{
			Name:        "#EXT-X-DATERANGE",
			Handler:     handleDaterange,
			Description: "Timed metadata range",
		},
		{
			Name:        "#EXT-X-PART",
			Handler:     handlePart,
			Description: "Partial segment",
		},
		{
			Name:        "#EXT-X-PART-INF",
			Handler:     handlePartInf,
			Description: "Partial segment parameters",
		},
		{
			Name:        "#EXT-X-SERVER-CONTROL",
			Handler:     handleServerControl,
			Description: "Server delivery directives",
		},
		{
			Name:        "#EXT-X-PRELOAD-HINT",
			Handler:     handlePreloadHint,
			Description: "Resource the client should request early",
		},
		{
			Name:        "#EXT-X-RENDITION-REPORT",
			Handler:     handleRenditionReport,
			Description: "State of a sibling rendition",
		},
		{
			Name:        "#EXT-X-SKIP",
			Handler:     handleSkip,
			Description: "Skipped-segment replacement",
		},
		{
			Name:        "#EXT-X-SESSION-DATA",
			Handler:     handleSessionData,
			Description: "Session-level metadata",
		},
		{
			Name:        "#EXT-X-CONTENT-STEERING",
			Handler:     handleContentSteering,
			Description: "Content steering manifest",
		},
		{
			Name:        "#EXT-X-START",
			Handler:     handleStart,
			Description: "Preferred playback start point",
		},
		{
			Name:        "#EXT-X-TILES",
			Handler:     handleTiles,
			Description: "Trick-play image tiles",
		},
	}

	for _, h := range handlers {
		p.RegisterTagHandler(h)
	}
}

func handleExtInf(line string, ctx *ParseContext) error {
	content := tagValue(line)
	comma := strings.IndexByte(content, ',')

	var durationText, title string
	if comma < 0 {
		if ctx.Strict {
			return NewParseError(ctx.LineNumber, line)
		}
		durationText = content
	} else {
		durationText = content[:comma]
		title = content[comma+1:]
	}

	duration := 0.0
	if f, err := strconv.ParseFloat(durationText, 64); err == nil {
		duration = f
	}

	segment := ctx.State.getOrCreateSegment()
	segment.Duration = &duration
	segment.Title = &title
	ctx.State.ExpectSegment = true
	return nil
}

func handleTargetDuration(line string, ctx *ParseContext) error {
	if n, ok := parseTagInt(line); ok {
		ctx.Result.TargetDuration = &n
	}
	return nil
}

func handleMediaSequence(line string, ctx *ParseContext) error {
	if n, ok := parseTagInt(line); ok {
		ctx.Result.MediaSequence = &n
	}
	return nil
}

func handleDiscontinuitySequence(line string, ctx *ParseContext) error {
	if n, ok := parseTagInt(line); ok {
		ctx.Result.DiscontinuitySequence = &n
	}
	return nil
}

func handleVersion(line string, ctx *ParseContext) error {
	if n, ok := parseTagInt(line); ok {
		ctx.Result.Version = &n
	}
	return nil
}

func handlePlaylistType(line string, ctx *ParseContext) error {
	v := strings.ToLower(strings.TrimSpace(tagValue(line)))
	ctx.Result.PlaylistType = &v
	return nil
}

func handleAllowCache(line string, ctx *ParseContext) error {
	v := strings.ToLower(strings.TrimSpace(tagValue(line)))
	ctx.Result.AllowCache = &v
	return nil
}

func handleEndlist(line string, ctx *ParseContext) error {
	ctx.Result.IsEndlist = true
	return nil
}

func handleIFramesOnly(line string, ctx *ParseContext) error {
	ctx.Result.IsIFramesOnly = true
	return nil
}

func handleIndependentSegments(line string, ctx *ParseContext) error {
	ctx.Result.IsIndependentSegments = true
	return nil
}

func handleImagesOnly(line string, ctx *ParseContext) error {
	ctx.Result.IsImagesOnly = true
	return nil
}

func handleDiscontinuity(line string, ctx *ParseContext) error {
	ctx.State.Discontinuity = true
	return nil
}

func handleGap(line string, ctx *ParseContext) error {
	ctx.State.Gap = true
	return nil
}

func handleProgramDateTime(line string, ctx *ParseContext) error {
	// A bare tag with no value is a no-op; only a present but
	// unparseable datetime aborts.
	if strings.IndexByte(line, ':') < 0 {
		return nil
	}
	t, err := parseDateTime(tagValue(line))
	if err != nil {
		return NewParseError(ctx.LineNumber, line)
	}
	if ctx.Result.ProgramDateTime == nil {
		first := t
		ctx.Result.ProgramDateTime = &first
	}
	oneShot := t
	cursor := t
	ctx.State.ProgramDateTime = &oneShot
	ctx.State.CurrentProgramDateTime = &cursor
	return nil
}

func handleKey(line string, ctx *ParseContext) error {
	key := parseKeyAttributes(line, "#EXT-X-KEY")
	ctx.State.CurrentKey = key
	if !ctx.Result.hasKey(key) {
		ctx.Result.Keys = append(ctx.Result.Keys, key)
	}
	return nil
}

func handleSessionKey(line string, ctx *ParseContext) error {
	key := parseKeyAttributes(line, "#EXT-X-SESSION-KEY")
	ctx.Result.SessionKeys = append(ctx.Result.SessionKeys, key)
	return nil
}

func handleMap(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-MAP", segmentMapSchema)
	ctx.State.CurrentSegmentMap = attrs
	ctx.Result.SegmentMap = append(ctx.Result.SegmentMap, attrs)
	return nil
}

func handleStreamInf(line string, ctx *ParseContext) error {
	ctx.Result.IsVariant = true
	ctx.Result.MediaSequence = nil
	ctx.State.StreamInfo = parseTagAttributes(line, "#EXT-X-STREAM-INF", streamInfSchema)
	ctx.State.ExpectPlaylist = true
	return nil
}

func handleIFrameStreamInf(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-I-FRAME-STREAM-INF", iframeStreamInfSchema)
	uri, ok := attrs.GetString("uri")
	if !ok {
		return nil
	}
	delete(attrs, "uri")
	ctx.Result.IFramePlaylists = append(ctx.Result.IFramePlaylists, IFramePlaylist{
		URI:              uri,
		IFrameStreamInfo: attrs,
	})
	return nil
}

func handleImageStreamInf(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-IMAGE-STREAM-INF", imageStreamInfSchema)
	uri, ok := attrs.GetString("uri")
	if !ok {
		return nil
	}
	delete(attrs, "uri")
	ctx.Result.ImagePlaylists = append(ctx.Result.ImagePlaylists, ImagePlaylist{
		URI:             uri,
		ImageStreamInfo: attrs,
	})
	return nil
}

func handleMedia(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-MEDIA", mediaSchema)
	ctx.Result.Media = append(ctx.Result.Media, attrs)
	return nil
}

func handleByterange(line string, ctx *ParseContext) error {
	segment := ctx.State.getOrCreateSegment()
	v := tagValue(line)
	segment.Byterange = &v
	ctx.State.ExpectSegment = true
	return nil
}

func handleBitrate(line string, ctx *ParseContext) error {
	segment := ctx.State.getOrCreateSegment()
	if n, ok := parseTagInt(line); ok {
		segment.Bitrate = &n
	}
	return nil
}

func handleCueOut(line string, ctx *ParseContext) error {
	state := ctx.State
	state.CueOutStart = true
	state.CueOut = true
	if strings.Contains(strings.ToUpper(line), "DURATION") {
		state.CueOutExplicitlyDuration = true
	}

	attrs := parseTagAttributes(line, "#EXT-X-CUE-OUT", cueOutSchema)
	if cue, ok := attrs.GetString("cue"); ok {
		state.CurrentCueOutSCTE35 = &cue
	}
	// Both #EXT-X-CUE-OUT:DURATION=30 and the bare #EXT-X-CUE-OUT:30
	// form carry the break duration; an absent value keeps whatever an
	// earlier tag established.
	if duration, ok := attrs.GetString("duration"); ok {
		state.CurrentCueOutDuration = &duration
	} else if duration, ok := attrs.GetString(""); ok {
		state.CurrentCueOutDuration = &duration
	}
	return nil
}

func handleCueOutCont(line string, ctx *ParseContext) error {
	state := ctx.State
	state.CueOut = true

	attrs := parseTagAttributes(line, "#EXT-X-CUE-OUT-CONT", cueOutContSchema)
	// Shorthand progress form: #EXT-X-CUE-OUT-CONT:8/30. The split is
	// at the first slash only; a token with no slash is a duration.
	if progress, ok := attrs.GetString(""); ok {
		if elapsed, duration, found := strings.Cut(progress, "/"); found {
			state.CurrentCueOutElapsedtime = &elapsed
			state.CurrentCueOutDuration = &duration
		} else {
			state.CurrentCueOutDuration = &progress
		}
	}
	if duration, ok := attrs.GetString("duration"); ok {
		state.CurrentCueOutDuration = &duration
	}
	if elapsed, ok := attrs.GetString("elapsedtime"); ok {
		state.CurrentCueOutElapsedtime = &elapsed
	}
	if scte35, ok := attrs.GetString("scte35"); ok {
		state.CurrentCueOutSCTE35 = &scte35
	}
	return nil
}

func handleCueIn(line string, ctx *ParseContext) error {
	ctx.State.CueIn = true
	return nil
}

func handleCueSpan(line string, ctx *ParseContext) error {
	ctx.State.CueOut = true
	return nil
}

func handleOatclsSCTE35(line string, ctx *ParseContext) error {
	if strings.IndexByte(line, ':') < 0 {
		return nil
	}
	v := tagValue(line)
	ctx.State.CurrentCueOutOatclsSCTE35 = &v
	if ctx.State.CurrentCueOutSCTE35 == nil {
		seed := v
		ctx.State.CurrentCueOutSCTE35 = &seed
	}
	return nil
}

func handleAsset(line string, ctx *ParseContext) error {
	ctx.State.AssetMetadata = parseTagAttributes(line, "#EXT-X-ASSET", nil)
	return nil
}

func handleBlackout(line string, ctx *ParseContext) error {
	ctx.State.Blackout = &Blackout{Raw: tagValue(line)}
	return nil
}

func handleDaterange(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-DATERANGE", daterangeSchema)
	ctx.State.Dateranges = append(ctx.State.Dateranges, attrs)
	return nil
}

func handlePart(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-PART", partSchema)
	finalizePart(attrs, ctx.State)
	return nil
}

func handlePartInf(line string, ctx *ParseContext) error {
	ctx.Result.PartInf = parseTagAttributes(line, "#EXT-X-PART-INF", partInfSchema)
	return nil
}

func handleServerControl(line string, ctx *ParseContext) error {
	ctx.Result.ServerControl = parseTagAttributes(line, "#EXT-X-SERVER-CONTROL", serverControlSchema)
	return nil
}

func handlePreloadHint(line string, ctx *ParseContext) error {
	ctx.Result.PreloadHint = parseTagAttributes(line, "#EXT-X-PRELOAD-HINT", preloadHintSchema)
	return nil
}

func handleRenditionReport(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-RENDITION-REPORT", renditionReportSchema)
	ctx.Result.RenditionReports = append(ctx.Result.RenditionReports, attrs)
	return nil
}

func handleSkip(line string, ctx *ParseContext) error {
	ctx.Result.Skip = parseTagAttributes(line, "#EXT-X-SKIP", skipSchema)
	return nil
}

func handleSessionData(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-SESSION-DATA", sessionDataSchema)
	ctx.Result.SessionData = append(ctx.Result.SessionData, attrs)
	return nil
}

func handleContentSteering(line string, ctx *ParseContext) error {
	ctx.Result.ContentSteering = parseTagAttributes(line, "#EXT-X-CONTENT-STEERING", contentSteeringSchema)
	return nil
}

func handleStart(line string, ctx *ParseContext) error {
	ctx.Result.Start = parseTagAttributes(line, "#EXT-X-START", startSchema)
	return nil
}

func handleTiles(line string, ctx *ParseContext) error {
	attrs := parseTagAttributes(line, "#EXT-X-TILES", tilesSchema)
	ctx.Result.Tiles = append(ctx.Result.Tiles, attrs)
	return nil
}
