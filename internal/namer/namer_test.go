package namer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain words", "hello world", "hello_world"},
		{"punctuation dropped", "hello, world!", "hello_world"},
		{"hyphens become underscores", "check-in notes", "check_in_notes"},
		{"whitespace runs collapse", "a  \t b", "a_b"},
		{"leading trailing trimmed", "  hello  ", "hello"},
		{"path separators dropped", "a/b\\c", "abc"},
		{"unicode kept", "Привіт світ", "Привіт_світ"},
		{"digits kept", "meeting 2024 notes", "meeting_2024_notes"},
		{"only punctuation", "?!...", ""},
		{"empty", "", ""},
		{"control characters dropped", "a\x00b\x1fc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"hello, world! how are you?",
		"Привіт, як справи?",
		"a - b -- c",
		"already_sanitized_name",
		"file/with\\separators:and*stars",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestDeriveFromTranscript(t *testing.T) {
	// 7 words with minWords 5: transcript wins.
	d := Derive("the quarterly budget review meeting notes today", 1, "rec001.mp3", ".mp3", Options{MinWords: 5})
	if d.Fallback {
		t.Error("Derive() Fallback = true, want transcript-derived name")
	}
	if d.Base != "1_the_quarterly_budget_review_meeting_notes_today" {
		t.Errorf("Base = %q", d.Base)
	}
}

func TestDeriveFallbackBelowMinWords(t *testing.T) {
	// 6 words with minWords 8: fallback, transcript never used.
	d := Derive("hello this is a test message", 3, "voice memo.wav", ".wav", Options{MinWords: 8})
	if !d.Fallback {
		t.Error("Derive() Fallback = false, want fallback")
	}
	if strings.Contains(d.Base, "hello") {
		t.Errorf("fallback name %q must not use the transcript", d.Base)
	}
	if d.Base != "voice_memo_3" {
		t.Errorf("Base = %q, want %q", d.Base, "voice_memo_3")
	}
}

func TestDeriveCapsTranscriptWords(t *testing.T) {
	transcript := "one two three four five six seven eight nine ten"
	d := Derive(transcript, 2, "r.wav", ".wav", Options{MinWords: 1})
	if d.Fallback {
		t.Fatal("unexpected fallback")
	}
	if d.Base != "2_one_two_three_four_five_six_seven_eight" {
		t.Errorf("Base = %q, want first 8 words only", d.Base)
	}
}

func TestDerivePunctuationOnlyTranscript(t *testing.T) {
	// Word count passes the minimum but sanitization empties it.
	d := Derive("!!! ??? ...", 1, "rec.wav", ".wav", Options{MinWords: 2})
	if !d.Fallback {
		t.Error("punctuation-only transcript should fall back")
	}
	if d.Base != "rec_1" {
		t.Errorf("Base = %q, want %q", d.Base, "rec_1")
	}
}

func TestDeriveEmptyTranscriptZeroMinWords(t *testing.T) {
	// minWords 0 accepts anything, but an empty transcript still has
	// nothing to name with.
	d := Derive("", 4, "rec.wav", ".wav", Options{MinWords: 0})
	if !d.Fallback {
		t.Error("empty transcript should fall back even with minWords 0")
	}
}

func TestDeriveUnusableOriginalName(t *testing.T) {
	d := Derive("", 7, "###.wav", ".wav", Options{MinWords: 8})
	if d.Base != "recording_7" {
		t.Errorf("Base = %q, want %q", d.Base, "recording_7")
	}
}

func TestDeriveTruncation(t *testing.T) {
	long := strings.Repeat("verylongword ", 8) // 8 words, each 12 chars
	d := Derive(long, 1, "r.wav", ".wav", Options{MinWords: 1, MaxLen: 40})
	if len(d.Base)+len(".wav") > 40 {
		t.Errorf("len(base+ext) = %d, want <= 40", len(d.Base)+len(".wav"))
	}
	if strings.HasSuffix(d.Base, "_") {
		t.Errorf("truncated base %q ends with underscore", d.Base)
	}
}

func TestDeriveTruncationRuneSafe(t *testing.T) {
	// Cyrillic is 2 bytes per rune; a byte-boundary cut must not split one.
	long := strings.Repeat("привіт ", 8)
	d := Derive(long, 1, "r.wav", ".wav", Options{MinWords: 1, MaxLen: 21})
	if !utf8.ValidString(d.Base) {
		t.Errorf("truncated base %q is not valid UTF-8", d.Base)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"hello this is a test message", 6},
		{"  spaced   out  words ", 3},
	}

	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
