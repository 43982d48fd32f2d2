// Package output renders parsed playlist results for CLIs and logs.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/streamtools/m3u8-common/m3u8"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(result *m3u8.PlaylistResult, prettyPrint bool) ([]byte, error)
}

// NewFormatter returns the formatter for a format name (json, yaml,
// summary).
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	case "summary", "text":
		return &SummaryFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Format(result *m3u8.PlaylistResult, prettyPrint bool) ([]byte, error) {
	if prettyPrint {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(result *m3u8.PlaylistResult, prettyPrint bool) ([]byte, error) {
	return yaml.Marshal(result)
}

// SummaryFormatter formats a human-readable playlist summary
type SummaryFormatter struct{}

var titleCaser = cases.Title(language.English)

func (f *SummaryFormatter) Format(result *m3u8.PlaylistResult, prettyPrint bool) ([]byte, error) {
	var b strings.Builder

	b.WriteString("PLAYLIST SUMMARY\n")
	b.WriteString("================\n\n")

	b.WriteString(fmt.Sprintf("Kind: %s\n", playlistKind(result)))
	if result.PlaylistType != nil {
		b.WriteString(fmt.Sprintf("Type: %s\n", titleCaser.String(*result.PlaylistType)))
	}
	if result.Version != nil {
		b.WriteString(fmt.Sprintf("Version: %d\n", *result.Version))
	}
	if result.TargetDuration != nil {
		b.WriteString(fmt.Sprintf("Target Duration: %ds\n", *result.TargetDuration))
	}
	if result.MediaSequence != nil {
		b.WriteString(fmt.Sprintf("Media Sequence: %d\n", *result.MediaSequence))
	}
	if result.ProgramDateTime != nil {
		b.WriteString(fmt.Sprintf("Program Date Time: %s\n", result.ProgramDateTime.Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf("Ended: %t\n", result.IsEndlist))
	b.WriteString("\n")

	if result.IsVariant {
		b.WriteString(fmt.Sprintf("Variant Streams: %d\n", len(result.Playlists)))
		for _, p := range result.Playlists {
			if bandwidth, ok := p.StreamInfo.GetInt("bandwidth"); ok {
				b.WriteString(fmt.Sprintf("  %s (%d bps)\n", p.URI, bandwidth))
			} else {
				b.WriteString(fmt.Sprintf("  %s\n", p.URI))
			}
		}
		if len(result.Media) > 0 {
			b.WriteString(fmt.Sprintf("Renditions: %d\n", len(result.Media)))
		}
		if len(result.IFramePlaylists) > 0 {
			b.WriteString(fmt.Sprintf("I-Frame Streams: %d\n", len(result.IFramePlaylists)))
		}
		if len(result.ImagePlaylists) > 0 {
			b.WriteString(fmt.Sprintf("Image Streams: %d\n", len(result.ImagePlaylists)))
		}
	} else {
		b.WriteString(fmt.Sprintf("Segments: %d\n", len(result.Segments)))
		b.WriteString(fmt.Sprintf("Total Duration: %s\n", FormatDuration(totalDuration(result))))
		if encrypted := encryptedKeyCount(result); encrypted > 0 {
			b.WriteString(fmt.Sprintf("Encryption Keys: %d\n", encrypted))
		}
		if ads := adBreakSegmentCount(result); ads > 0 {
			b.WriteString(fmt.Sprintf("Ad Break Segments: %d\n", ads))
		}
	}

	return []byte(b.String()), nil
}

func playlistKind(result *m3u8.PlaylistResult) string {
	switch {
	case result.IsVariant:
		return "Master"
	case result.IsIFramesOnly:
		return "I-Frames Media"
	case result.IsImagesOnly:
		return "Image Media"
	default:
		return "Media"
	}
}

func totalDuration(result *m3u8.PlaylistResult) time.Duration {
	var seconds float64
	for _, seg := range result.Segments {
		if seg.Duration != nil {
			seconds += *seg.Duration
		}
	}
	return time.Duration(seconds * float64(time.Second))
}

func encryptedKeyCount(result *m3u8.PlaylistResult) int {
	n := 0
	for _, k := range result.Keys {
		if k != nil {
			n++
		}
	}
	return n
}

func adBreakSegmentCount(result *m3u8.PlaylistResult) int {
	n := 0
	for _, seg := range result.Segments {
		if seg.CueOut || seg.CueIn {
			n++
		}
	}
	return n
}

// FormatDuration formats a duration for human-readable output
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
