package inmem

import (
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

type TagIndex struct {
	tags *xsync.MapOf[string, struct{}]
}

func NewTagIndex() *TagIndex {
	return &TagIndex{tags: xsync.NewMapOf[string, struct{}]()}
}

func (s *TagIndex) Index(tags ...string) error {
	for _, tag := range tags {
		s.tags.Store(tag, struct{}{})
	}
	return nil
}

func (s *TagIndex) Search(prefix string) ([]string, error) {
	tags := make([]string, 0)
	s.tags.Range(func(tag string, _ struct{}) bool {
		if strings.HasPrefix(tag, prefix) {
			tags = append(tags, tag)
		}
		return true
	})
	sort.Strings(tags)
	return tags, nil
}
