package search

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type item struct {
	title string
	tags  []string
}

func (i item) Title() string        { return i.title }
func (i item) SearchTags() []string { return i.tags }

// catalog mirrors the shipped recipe titles and tags
var catalog = []item{
	{"File transfer", []string{}},
	{"Copy & Paste (macOS)", []string{"clipboard"}},
	{"Directory transfer (tar)", []string{"folder", "tar.gz", "gzip"}},
	{"Directory transfer (tar) (E2EE)", []string{"folder", "tar.gz", "gzip", "end-to-end encryption"}},
	{"Directory transfer (zip)", []string{"folder"}},
	{"Port forwarding", []string{"tunnel"}},
	{"Port forwarding (E2EE inputting pass)", []string{"tunnel", "e2ee", "end-to-end", "encryption"}},
}

func titles(results []Result[item]) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.title
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"Folder", []string{"folder"}},
		{"  tar\tGZ \n zip ", []string{"tar", "gz", "zip"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Tokenize(tt.in)); diff != "" {
			t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    []string
		scores  []int
	}{
		{
			name:    "folder",
			keyword: "folder",
			want:    []string{"Directory transfer (tar)", "Directory transfer (tar) (E2EE)", "Directory transfer (zip)"},
			scores:  []int{1, 1, 1},
		},
		{
			name:    "title words weigh double",
			keyword: "transfer",
			want:    []string{"File transfer", "Directory transfer (tar)", "Directory transfer (tar) (E2EE)", "Directory transfer (zip)"},
			scores:  []int{2, 2, 2, 2},
		},
		{
			name:    "or across tokens ranks by sum",
			keyword: "e2ee tunnel",
			want:    []string{"Port forwarding (E2EE inputting pass)", "Directory transfer (tar) (E2EE)", "Port forwarding"},
			scores:  []int{4, 2, 1},
		},
		{
			name:    "title is case-insensitive",
			keyword: "MACOS",
			want:    []string{"Copy & Paste (macOS)"},
			scores:  []int{2},
		},
		{
			name:    "substring of a tag",
			keyword: "zip",
			want:    []string{"Directory transfer (zip)", "Directory transfer (tar)", "Directory transfer (tar) (E2EE)"},
			scores:  []int{2, 1, 1},
		},
		{
			name:    "no match",
			keyword: "rsync",
			want:    []string{},
			scores:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(catalog, tt.keyword)
			if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
				t.Errorf("Rank(%q) order mismatch (-want +got):\n%s", tt.keyword, diff)
			}
			scores := make([]int, len(got))
			for i, r := range got {
				scores[i] = r.Score
			}
			if diff := cmp.Diff(tt.scores, scores); diff != "" {
				t.Errorf("Rank(%q) scores mismatch (-want +got):\n%s", tt.keyword, diff)
			}
		})
	}
}

func TestRank_TagsAreCaseSensitive(t *testing.T) {
	entries := []item{{"Something", []string{"Clipboard"}}}

	if got := Rank(entries, "clipboard"); len(got) != 0 {
		t.Errorf("lower-case token should not match an upper-case tag, got %v", titles(got))
	}
	if got := Rank(entries, "lipboard"); len(got) != 1 {
		t.Errorf("token should match inside the tag, got %v", titles(got))
	}
}

func TestRank_EmptyKeywordPassthrough(t *testing.T) {
	for _, keyword := range []string{"", " ", "\t\n"} {
		got := Rank(catalog, keyword)
		want := make([]string, len(catalog))
		for i, e := range catalog {
			want[i] = e.title
		}
		if diff := cmp.Diff(want, titles(got)); diff != "" {
			t.Errorf("Rank(%q) should return the full catalog in order (-want +got):\n%s", keyword, diff)
		}
		for _, r := range got {
			if r.Score != 0 {
				t.Errorf("Rank(%q) score = %d, want 0", keyword, r.Score)
			}
		}
	}
}

func TestFilter(t *testing.T) {
	got := Filter(catalog, "clipboard")
	if len(got) != 1 || got[0].title != "Copy & Paste (macOS)" {
		t.Errorf("Filter() = %v", got)
	}
}

func genItem() gopter.Gen {
	word := gen.RegexMatch(`[a-z]{1,6}`)
	return gopter.CombineGens(
		gen.SliceOfN(3, word),
		gen.SliceOf(word),
	).Map(func(v []interface{}) item {
		return item{title: strings.Join(v[0].([]string), " "), tags: v[1].([]string)}
	})
}

func TestSearchProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	token := gen.RegexMatch(`[a-z]{1,3}`)

	properties.Property("a matching token always includes the entry", prop.ForAll(
		func(entries []item, tok string, extra string) bool {
			keyword := extra + " " + tok
			included := map[string]bool{}
			for _, r := range Rank(entries, keyword) {
				included[r.Entry.title] = true
			}
			for _, e := range entries {
				if Matches(e, []string{tok}) && !included[e.title] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genItem()), token, token,
	))

	properties.Property("results are ordered by score, ties in input order", prop.ForAll(
		func(entries []item, keyword string) bool {
			position := func(e item) int {
				for i := range entries {
					if entries[i].title == e.title {
						return i
					}
				}
				return -1
			}
			results := Rank(entries, keyword)
			for i := 1; i < len(results); i++ {
				prev, cur := results[i-1], results[i]
				if prev.Score < cur.Score {
					return false
				}
				if prev.Score == cur.Score && position(prev.Entry) > position(cur.Entry) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genItem()).SuchThat(func(v []item) bool {
			seen := map[string]bool{}
			for _, e := range v {
				if seen[e.title] {
					return false
				}
				seen[e.title] = true
			}
			return true
		}),
		token,
	))

	properties.Property("every result scores at least one match", prop.ForAll(
		func(entries []item, keyword string) bool {
			for _, r := range Rank(entries, keyword) {
				if r.Score <= 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genItem()), token,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
