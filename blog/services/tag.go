package services

import (
	"strings"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

type TagService struct {
	index blog.TagIndex
}

func NewTagService(index blog.TagIndex) *TagService {
	return &TagService{
		index: index,
	}
}

func (s *TagService) Search(q string) ([]string, error) {
	tags, err := s.index.Search(strings.TrimSpace(q))
	if err != nil {
		return nil, errStore("could not search tags", err)
	}
	return tags, nil
}
