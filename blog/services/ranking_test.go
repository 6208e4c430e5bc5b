package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

func TestRank(t *testing.T) {
	posts := []blog.Post{
		{ID: "p1", Tags: []string{"a"}},
		{ID: "p2", Tags: []string{"a", "b"}},
		{ID: "p3", Tags: []string{}},
		{ID: "p4", Tags: []string{"b", "a"}},
		{ID: "p5", Tags: []string{"c"}},
	}

	var tts = map[string]struct {
		Selected []string
		Expected []string
	}{
		"no selection keeps the order": {
			Selected: nil,
			Expected: []string{"p1", "p2", "p3", "p4", "p5"},
		},
		"one tag": {
			Selected: []string{"b"},
			Expected: []string{"p2", "p4", "p1", "p3", "p5"},
		},
		"two tags": {
			Selected: []string{"a", "b"},
			Expected: []string{"p2", "p4", "p1", "p3", "p5"},
		},
		"duplicated selection counts once": {
			Selected: []string{"c", "c", "c", "a", "b"},
			Expected: []string{"p2", "p4", "p1", "p5", "p3"},
		},
		"unknown tag keeps the order": {
			Selected: []string{"z"},
			Expected: []string{"p1", "p2", "p3", "p4", "p5"},
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.Expected, ids(Rank(posts, tt.Selected)))
		})
	}

	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(posts), "input should not be modified")
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, []string{"a"}))
	assert.Empty(t, Rank([]blog.Post{}, nil))
}
