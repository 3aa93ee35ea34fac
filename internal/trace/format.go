package trace

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

type Format uint8

const (
	FormatAuto Format = iota // text, or ndjson for *.ndjson paths
	FormatText
	FormatNDJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent renders one event. start anchors the relative timestamps of
// the text format.
func FormatEvent(ev *Event, format Format, start time.Time) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev, start)
}

type jsonEvent struct {
	Time       string            `json:"time"`
	Seq        uint64            `json:"seq"`
	Kind       string            `json:"kind"`
	Scope      string            `json:"scope"`
	SpanID     uint64            `json:"span_id,omitempty"`
	ParentID   uint64            `json:"parent_id,omitempty"`
	Name       string            `json:"name"`
	Detail     string            `json:"detail,omitempty"`
	DurationUS int64             `json:"duration_us,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:       ev.Time.Format(time.RFC3339Nano),
		Seq:        ev.Seq,
		Kind:       ev.Kind.String(),
		Scope:      ev.Scope.String(),
		SpanID:     ev.SpanID,
		ParentID:   ev.ParentID,
		Name:       ev.Name,
		Detail:     ev.Detail,
		DurationUS: ev.Duration.Microseconds(),
		Fields:     ev.Fields,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// formatText: "[  12.345ms] scope → name (detail) k=v"
func formatText(ev *Event, start time.Time) []byte {
	var sb strings.Builder
	var elapsed time.Duration
	if !start.IsZero() {
		elapsed = ev.Time.Sub(start)
	}
	fmt.Fprintf(&sb, "[%9.3fms] %-6s ", float64(elapsed.Microseconds())/1000, ev.Scope)
	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	default:
		sb.WriteString("• ")
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		sb.WriteString(" (" + ev.Detail + ")")
	}
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " %s", ev.Duration.Round(time.Microsecond))
	}
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		sb.WriteString(" " + k + "=" + ev.Fields[k])
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
