package voice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVocabulary(t *testing.T) {
	cases := []struct {
		transcript string
		want       Command
	}{
		{"open downloads", Command{Kind: KindOpen, Arg: "downloads"}},
		{"go to documents", Command{Kind: KindOpen, Arg: "documents"}},
		{"back", Command{Kind: KindBack}},
		{"go back", Command{Kind: KindBack}},
		{"up", Command{Kind: KindUp}},
		{"create file notes.txt", Command{Kind: KindCreateFile, Arg: "notes.txt"}},
		{"create folder projects", Command{Kind: KindCreateDir, Arg: "projects"}},
		{"delete", Command{Kind: KindDelete}},
		{"rename to report-final.pdf", Command{Kind: KindRename, Arg: "report-final.pdf"}},
		{"search quarterly report", Command{Kind: KindSearch, Arg: "quarterly report"}},
		{"tag as important", Command{Kind: KindTag, Arg: "important"}},
		{"stop", Command{Kind: KindStop}},
		{"EXIT", Command{Kind: KindStop}},
		{"  Create File   readme.md  ", Command{Kind: KindCreateFile, Arg: "readme.md"}},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.transcript)
		require.NoError(t, err, "transcript %q", tc.transcript)
		require.Equal(t, tc.want, cmd, "transcript %q", tc.transcript)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, transcript := range []string{"", "   ", "make me a sandwich", "open", "rename to", "tag as"} {
		_, err := Parse(transcript)
		require.ErrorIs(t, err, ErrUnrecognized, "transcript %q", transcript)
	}
}
