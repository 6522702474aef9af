package metadata_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/metadata"
)

var roundTripInputs = map[string]string{
	"empty":          "",
	"plain":          "just text\nno metadata\n",
	"inline only":    "a:: 1\nb:: 2\nhello\n",
	"frontmatter":    "---\ntitle: Hello\ntags:\n  - x\n  - y\n---\nbody\n",
	"both":           "---\ntitle: 'quoted'\n# note\n---\nstatus:: done\ntext\nrefs:: x,y ,z\n",
	"duplicates":     "a:: 1\nmid\na:: 2\n",
	"unterminated":   "x\nkey:: v",
	"crlf":           "---\r\nt: 1\r\n---\r\nk:: v\r\n",
	"open fence":     "```\ncode:: x\n",
	"empty block":    "---\n---\nbody\n",
	"unclosed block": "---\nk: v\nbody:: 1\n",
	"block scalar":   "---\ndesc: |\n  line1\n\n  line2\n\nk: v\n---\nbody\n",
}

func TestRender_RoundTrip(t *testing.T) {
	for name, text := range roundTripInputs {
		for _, placement := range []core.Placement{core.PlacementTop, core.PlacementBottom} {
			t.Run(name+"/"+placement.String(), func(t *testing.T) {
				got, err := metadata.Parse(text).Render(text, placement, true)
				require.NoError(t, err)
				if diff := cmp.Diff(text, got); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	mutate := func(md *metadata.NoteMetadata) {
		_ = md.Add("added", []string{"1"}, core.Inline)
		_ = md.Add("fm", []string{"x", "y"}, core.Frontmatter)
	}

	for name, text := range roundTripInputs {
		for _, placement := range []core.Placement{core.PlacementTop, core.PlacementBottom} {
			for _, inplace := range []bool{true, false} {
				t.Run(name, func(t *testing.T) {
					md := metadata.Parse(text)
					mutate(md)
					first, err := md.Render(text, placement, inplace)
					require.NoError(t, err)

					second, err := metadata.Parse(first).Render(first, placement, inplace)
					require.NoError(t, err)
					if diff := cmp.Diff(first, second); diff != "" {
						t.Errorf("placement=%s inplace=%v not idempotent (-first +second):\n%s", placement, inplace, diff)
					}
				})
			}
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		mutate    func(t *testing.T, md *metadata.NoteMetadata)
		placement core.Placement
		inplace   bool
		want      string
	}{
		{
			name:  "Relocate To Bottom With New Entry",
			input: "a:: 1\nb:: 2\nhello\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("c", []string{"3"}, core.Inline))
			},
			placement: core.PlacementBottom,
			want:      "hello\na:: 1\nb:: 2\nc:: 3\n",
		},
		{
			name:      "In Place Without Changes",
			input:     "a:: 1\nb:: 2\nhello\n",
			placement: core.PlacementTop,
			inplace:   true,
			want:      "a:: 1\nb:: 2\nhello\n",
		},
		{
			name:  "New Inline Goes To Top Block",
			input: "a:: 1\nb:: 2\nhello\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("c", []string{"3"}, core.Inline))
			},
			placement: core.PlacementTop,
			inplace:   true,
			want:      "c:: 3\na:: 1\nb:: 2\nhello\n",
		},
		{
			name:  "Top Block Follows Frontmatter",
			input: "---\nt: x\n---\nbody\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("c", []string{"3"}, core.Inline))
			},
			placement: core.PlacementTop,
			inplace:   true,
			want:      "---\nt: x\n---\nc:: 3\nbody\n",
		},
		{
			name:  "Rewrite In Place",
			input: "x\nstatus:: todo\ny\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("status", []string{"done", "shipped"}, core.Inline))
			},
			inplace: true,
			want:    "x\nstatus:: done, shipped\ny\n",
		},
		{
			name:  "Changed Duplicate Keeps Last Occurrence",
			input: "a:: 1\nmid\na:: 2\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("a", []string{"3"}, core.Inline))
			},
			inplace: true,
			want:    "mid\na:: 3\n",
		},
		{
			name:  "Removed Inline Line Dropped",
			input: "a:: 1\nb:: 2\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				md.Remove("a", nil, core.Inline)
			},
			inplace: true,
			want:    "b:: 2\n",
		},
		{
			name:  "Empty Values",
			input: "",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("i", nil, core.Inline))
				require.NoError(t, md.Set("f", nil, core.Frontmatter))
			},
			want: "---\nf:\n---\ni::\n",
		},
		{
			name:  "Insert Frontmatter Block",
			input: "hello\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("title", []string{"T"}, core.Frontmatter))
			},
			inplace: true,
			want:    "---\ntitle: T\n---\nhello\n",
		},
		{
			name:  "Append To Existing Block",
			input: "---\na: 1\n---\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("b", []string{"x", "y"}, core.Frontmatter))
			},
			inplace: true,
			want:    "---\na: 1\nb: [x, y]\n---\n",
		},
		{
			name:  "Rewrite Block List Entry",
			input: "---\ntags:\n  - x\n  - y\nname: n\n---\nbody\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("tags", []string{"z"}, core.Frontmatter))
			},
			inplace: true,
			want:    "---\ntags: [x, y, z]\nname: n\n---\nbody\n",
		},
		{
			name:  "Unrecognized Frontmatter Lines Kept",
			input: "---\n# comment\nnested:\n  a: 1\nk: v\n---\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("k", []string{"w"}, core.Frontmatter))
			},
			inplace: true,
			want:    "---\n# comment\nnested:\n  a: 1\nk: w\n---\n",
		},
		{
			name:  "Rewrite Block Scalar With Blank Lines",
			input: "---\ndesc: |\n  line1\n\n  line2\nk: v\n---\nbody\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("desc", []string{"new"}, core.Frontmatter))
			},
			inplace: true,
			want:    "---\ndesc: new\nk: v\n---\nbody\n",
		},
		{
			name:  "Remove Last Frontmatter Entry Drops Block",
			input: "---\na: 1\n---\nbody\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				md.Remove("a", nil, core.Frontmatter)
			},
			inplace: true,
			want:    "body\n",
		},
		{
			name:  "Rename Both Scopes",
			input: "---\nold: v\n---\nold:: w\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Rename("old", "new", core.Any))
			},
			inplace: true,
			want:    "---\nnew: v\n---\nnew:: w\n",
		},
		{
			name:  "Move Inline To Frontmatter",
			input: "a:: 1\nbody\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Move("a", core.Frontmatter))
			},
			inplace: true,
			want:    "---\na: 1\n---\nbody\n",
		},
		{
			name:  "CRLF Preserved",
			input: "a:: 1\r\nb\r\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("a", []string{"2"}, core.Inline))
			},
			inplace: true,
			want:    "a:: 2\r\nb\r\n",
		},
		{
			name:  "Unterminated Last Line Rewritten",
			input: "x\na:: 1",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Set("a", []string{"2"}, core.Inline))
			},
			inplace: true,
			want:    "x\na:: 2",
		},
		{
			name:  "Bottom Block After Unterminated Text",
			input: "hello",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("c", []string{"3"}, core.Inline))
			},
			inplace: true,
			want:    "hello\nc:: 3\n",
		},
		{
			name:  "Bottom Block Closes Open Fence",
			input: "```\ncode\n",
			mutate: func(t *testing.T, md *metadata.NoteMetadata) {
				require.NoError(t, md.Add("c", []string{"3"}, core.Inline))
			},
			inplace: true,
			want:    "```\ncode\n```\nc:: 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := metadata.Parse(tt.input)
			if tt.mutate != nil {
				tt.mutate(t, md)
			}
			got, err := md.Render(tt.input, tt.placement, tt.inplace)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_FrontmatterQuoting(t *testing.T) {
	values := [][]string{
		{"a: b"},
		{"#hash"},
		{"true"},
		{""},
		{"x, y", "z"},
		{"multi\nline"},
	}
	for _, v := range values {
		md := metadata.Parse("")
		require.NoError(t, md.Set("k", v, core.Frontmatter))
		out, err := md.Render("", core.PlacementBottom, true)
		require.NoError(t, err)

		e, ok := metadata.Parse(out).Get("k", core.Frontmatter)
		require.True(t, ok, "rendered %q", out)
		assert.Equal(t, v, e.Values, "rendered %q", out)
	}
}

func TestRender_FrontmatterKeys(t *testing.T) {
	for _, key := range []string{"my key", "-x", "#hash", "a: b", "- item"} {
		md := metadata.Parse("")
		require.NoError(t, md.Set(key, []string{"v"}, core.Frontmatter))
		out, err := md.Render("", core.PlacementBottom, true)
		require.NoError(t, err)
		assert.True(t, metadata.Parse(out).Has(key, []string{"v"}, core.Frontmatter), "rendered %q", out)
	}
}

func TestRender_Errors(t *testing.T) {
	md := metadata.Parse("a:: 1\n")

	_, err := md.Render("a:: 2\n", core.PlacementBottom, true)
	assert.ErrorIs(t, err, core.ErrSourceMismatch)

	_, err = md.Render("a:: 1\n", core.Placement(42), true)
	assert.ErrorIs(t, err, core.ErrInvalidPlacement)
}
