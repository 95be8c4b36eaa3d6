package agent

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic sentences",
			text: "Hello world. How are you? Great!",
			want: []string{"Hello world.", "How are you?", "Great!"},
		},
		{
			name: "delimiter without whitespace stays attached",
			text: "Pi is 3.14 and that is all.",
			want: []string{"Pi is 3.14 and that is all."},
		},
		{
			name: "multiple whitespace consumed",
			text: "First.   Second.",
			want: []string{"First.", "Second."},
		},
		{
			name: "no terminal punctuation",
			text: "an unfinished thought",
			want: []string{"an unfinished thought"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSentences(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d sentences %q, want %d %q", len(got), got, len(tc.want), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("sentence %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSplitSentencesReassembly(t *testing.T) {
	text := "One sentence. Another one! A third? The tail"
	var rebuilt strings.Builder
	for i, s := range SplitSentences(text) {
		if i > 0 {
			rebuilt.WriteString(" ")
		}
		rebuilt.WriteString(s)
	}
	if rebuilt.String() != text {
		t.Fatalf("reassembled %q, want %q", rebuilt.String(), text)
	}
}
