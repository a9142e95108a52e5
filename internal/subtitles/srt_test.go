package subtitles

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/patrickprogramme/edxdl/pkg/model"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ms   model.Millis
		want string
	}{
		{0, "00:00:00,000"},
		{999, "00:00:00,999"},
		{1000, "00:00:01,000"},
		{61_001, "00:01:01,001"},
		{3_661_000, "01:01:01,000"},
		{3_600_000 + 59*60_000 + 59_000 + 999, "01:59:59,999"},
		{25 * 3_600_000, "25:00:00,000"},
	}
	for _, tc := range tests {
		if got := FormatTimestamp(tc.ms); got != tc.want {
			t.Errorf("FormatTimestamp(%d) = %q; want %q", tc.ms, got, tc.want)
		}
	}
}

func TestToSRT_SkipsEmptyText(t *testing.T) {
	c := Caption{
		Start: []float64{0, 1000},
		End:   []float64{500, 1500},
		Text:  []string{"hello", ""},
	}
	got, err := ToSRT(c)
	if err != nil {
		t.Fatalf("ToSRT: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:00,500\nhello\n\n"
	if got != want {
		t.Fatalf("ToSRT = %q; want %q", got, want)
	}
}

func TestToCues_IndicesContiguous(t *testing.T) {
	c := Caption{
		Start: []float64{0, 100, 200, 300, 400, 500},
		End:   []float64{90, 190, 290, 390, 490, 590},
		Text:  []string{"", "a", "", "", "b", "c"},
	}
	cues, err := ToCues(c)
	if err != nil {
		t.Fatalf("ToCues: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("got %d cues; want 3", len(cues))
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d: Index = %d; want %d", i, cue.Index, i+1)
		}
	}
	if cues[0].Text != "a" || cues[0].StartMillis != 100 {
		t.Errorf("first cue = %+v", cues[0])
	}

	// même propriété sur le texte sérialisé
	srt := WriteCues(cues)
	blocks := strings.Split(strings.TrimSuffix(srt, "\n\n"), "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks; want 3", len(blocks))
	}
	for i, b := range blocks {
		first := strings.SplitN(b, "\n", 2)[0]
		if first != strconv.Itoa(i+1) {
			t.Errorf("block %d index = %q", i, first)
		}
	}
}

func TestToSRT_FractionalMillis(t *testing.T) {
	c := Caption{Start: []float64{1234.5678}, End: []float64{2000.9999}, Text: []string{"x"}}
	got, err := ToSRT(c)
	if err != nil {
		t.Fatalf("ToSRT: %v", err)
	}
	if !strings.Contains(got, "00:00:01,234 --> 00:00:02,001") {
		t.Fatalf("ToSRT = %q", got)
	}
}

func TestToSRT_Empty(t *testing.T) {
	got, err := ToSRT(Caption{})
	if err != nil || got != "" {
		t.Fatalf("ToSRT(empty) = %q, %v", got, err)
	}
}

func TestCaptionValidate_NonFinite(t *testing.T) {
	tests := []struct {
		name string
		c    Caption
	}{
		{name: "NaN start", c: Caption{Start: []float64{math.NaN()}, End: []float64{5}, Text: []string{"a"}}},
		{name: "+Inf end", c: Caption{Start: []float64{0}, End: []float64{math.Inf(1)}, Text: []string{"a"}}},
		{name: "-Inf start", c: Caption{Start: []float64{math.Inf(-1)}, End: []float64{5}, Text: []string{"a"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var merr *MalformedCaptionError
			if err := tc.c.Validate(); !errors.As(err, &merr) {
				t.Fatalf("err = %v; want *MalformedCaptionError", err)
			}
			if _, err := ToSRT(tc.c); err == nil {
				t.Fatal("ToSRT: want error")
			}
		})
	}
}

func TestParseCaption(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantErr   bool
		wantCount int
	}{
		{name: "valid", in: `{"start":[0,1000],"end":[500,1500],"text":["a","b"]}`, wantCount: 2},
		{name: "extra fields ignored", in: `{"start":[0],"end":[5],"text":["a"],"lang":"en"}`, wantCount: 1},
		{name: "unequal lengths", in: `{"start":[0,1],"end":[5],"text":["a","b"]}`, wantErr: true},
		{name: "non numeric start", in: `{"start":["zero"],"end":[5],"text":["a"]}`, wantErr: true},
		{name: "negative offset", in: `{"start":[-1],"end":[5],"text":["a"]}`, wantErr: true},
		{name: "start beyond int64 range", in: `{"start":[1e300],"end":[5],"text":["x"]}`, wantErr: true},
		{name: "end beyond int64 range", in: `{"start":[0],"end":[1e16],"text":["x"]}`, wantErr: true},
		{name: "large but representable", in: `{"start":[0],"end":[1e15],"text":["x"]}`, wantCount: 1},
		{name: "not json", in: `<html>404</html>`, wantErr: true},
		{name: "empty", in: ``, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseCaption([]byte(tc.in))
			if tc.wantErr {
				var merr *MalformedCaptionError
				if !errors.As(err, &merr) {
					t.Fatalf("err = %v; want *MalformedCaptionError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCaption: %v", err)
			}
			if c.Len() != tc.wantCount {
				t.Fatalf("Len = %d; want %d", c.Len(), tc.wantCount)
			}
		})
	}
}
