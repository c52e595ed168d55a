package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"BV1xx411c7mD", "BV1xx411c7mD", false},
		{"https://www.bilibili.com/video/BV1GJ411x7h7/?p=1", "BV1GJ411x7h7", false},
		{"  BV1GJ411x7h7  ", "BV1GJ411x7h7", false},
		{"av170001", "", true},
		{"BV123", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVideoID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVideoID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeBilibili(t *testing.T) {
	doc := `{
		"bvid": "BV1GJ411x7h7",
		"title": "曹冲称象",
		"body": [
			{"from": 0, "to": 3.2, "content": "好，今天我们来学习曹冲称象"},
			{"from": "3.2", "to": null, "content": "老师好"},
			{"from": 4.5, "to": 5, "content": "请坐"}
		]
	}`
	track, err := DecodeBilibili(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeBilibili() error = %v", err)
	}
	if track.VideoID != "BV1GJ411x7h7" || track.Title != "曹冲称象" {
		t.Errorf("metadata = %q %q", track.VideoID, track.Title)
	}
	want := []timeline.RawEntry{
		{Start: "0", End: "3.2", Text: "好，今天我们来学习曹冲称象"},
		{Start: "3.2", End: "", Text: "老师好"},
		{Start: "4.5", End: "5", Text: "请坐"},
	}
	if len(track.Entries) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d", len(track.Entries), len(want))
	}
	for i := range want {
		if track.Entries[i] != want[i] {
			t.Errorf("Entries[%d] = %+v, want %+v", i, track.Entries[i], want[i])
		}
	}

	// The missing end survives decoding and is dropped by the loader.
	cues, report, err := timeline.Load(track.Entries)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cues) != 2 || len(report.Dropped) != 1 || report.Dropped[0].Index != 1 {
		t.Errorf("Load() = %d cues, dropped %+v", len(cues), report.Dropped)
	}
}

func TestDecodeBilibiliInvalid(t *testing.T) {
	if _, err := DecodeBilibili(strings.NewReader(`{"body": [`)); err == nil {
		t.Error("DecodeBilibili() error = nil, want error")
	}
}

func TestParseSRT(t *testing.T) {
	doc := "\ufeff1\r\n00:00:00,000 --> 00:00:03,000\r\n好，今天我们\r\n来学习曹冲称象\r\n\r\n" +
		"2\n00:00:03,000 --> 00:00:03,400 X1:40 X2:600\n老师好\n\n\n" +
		"3\nbroken timing\n请坐\n"

	track, err := ParseSRT(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	want := []timeline.RawEntry{
		{Start: "00:00:00,000", End: "00:00:03,000", Text: "好，今天我们 来学习曹冲称象"},
		{Start: "00:00:03,000", End: "00:00:03,400", Text: "老师好"},
		{Start: "broken timing", End: "", Text: "请坐"},
	}
	if len(track.Entries) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d: %+v", len(track.Entries), len(want), track.Entries)
	}
	for i := range want {
		if track.Entries[i] != want[i] {
			t.Errorf("Entries[%d] = %+v, want %+v", i, track.Entries[i], want[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	srt := filepath.Join(dir, "BV1GJ411x7h7.srt")
	if err := os.WriteFile(srt, []byte("1\n00:00:01,000 --> 00:00:02,000\n上课\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	track, err := ReadFile(srt)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if track.VideoID != "BV1GJ411x7h7" || track.Title != "BV1GJ411x7h7" {
		t.Errorf("metadata = %q %q, want id from file name", track.VideoID, track.Title)
	}
	if len(track.Entries) != 1 {
		t.Errorf("len(Entries) = %d, want 1", len(track.Entries))
	}

	if _, err := ReadFile(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("ReadFile(notes.txt) error = nil, want error")
	}
}

func TestDecodeBilibiliIgnoresMalformedBVID(t *testing.T) {
	tests := []struct {
		name string
		bvid string
		want string
	}{
		{"path traversal", "../../escaped", ""},
		{"absolute path", "/tmp/x", ""},
		{"id inside a url", "https://www.bilibili.com/video/BV1GJ411x7h7/", "BV1GJ411x7h7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"bvid": "` + tt.bvid + `", "body": [{"from": 0, "to": 1, "content": "上课"}]}`
			track, err := DecodeBilibili(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("DecodeBilibili() error = %v", err)
			}
			if track.VideoID != tt.want {
				t.Errorf("VideoID = %q, want %q", track.VideoID, tt.want)
			}
		})
	}
}

func TestReadFileFallsBackToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lesson-3.json")
	doc := `{"bvid": "../../escaped", "body": [{"from": 0, "to": 1, "content": "上课"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	track, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if track.VideoID != "lesson-3" {
		t.Errorf("VideoID = %q, want lesson-3", track.VideoID)
	}
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"BV1GJ411x7h7":  "BV1GJ411x7h7",
		"../../escaped": ".._.._escaped",
		`a\b`:           "a_b",
		"..":            "untitled",
		" . ":           "untitled",
		"":              "untitled",
	}
	for in, want := range tests {
		if got := SafeName(in); got != want {
			t.Errorf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"a.json":  true,
		"a.SRT":   true,
		"a.srt":   true,
		"a.txt":   false,
		"a.json~": false,
	}
	for path, want := range tests {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}
