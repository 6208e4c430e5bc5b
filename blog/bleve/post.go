package bleve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

type PostIndex struct {
	index bleve.Index
}

// Open opens the index stored at path, creating it if needed.
func (s *PostIndex) Open(path string) error {
	if s.index != nil {
		return errors.New("index already open")
	}

	index, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		index, err = bleve.New(path, buildMapping())
		if err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("open index: %w", err)
	}

	s.index = index
	return nil
}

// OpenMemOnly opens an index that lives in memory only.
func (s *PostIndex) OpenMemOnly() error {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *PostIndex) Close() error {
	if s.index == nil {
		return nil
	}

	err := s.index.Close()
	s.index = nil
	return err
}

func buildMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName

	kw := bleve.NewTextFieldMapping()
	kw.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", text)
	doc.AddFieldMappingsAt("content", text)
	doc.AddFieldMappingsAt("tags", kw)
	doc.AddFieldMappingsAt("authorId", kw)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func document(post blog.Post) map[string]interface{} {
	return map[string]interface{}{
		"title":    post.Title,
		"content":  post.Content,
		"tags":     post.Tags,
		"authorId": post.AuthorID,
	}
}

func (s *PostIndex) Index(post blog.Post) error {
	return s.index.Index(post.ID, document(post))
}

// IndexAll indexes posts in one batch.
func (s *PostIndex) IndexAll(posts []blog.Post) error {
	batch := s.index.NewBatch()
	for _, post := range posts {
		if err := batch.Index(post.ID, document(post)); err != nil {
			return fmt.Errorf("batch index %s: %w", post.ID, err)
		}
	}

	return s.index.Batch(batch)
}

func (s *PostIndex) Delete(id string) error {
	return s.index.Delete(id)
}

func (s *PostIndex) Count() (uint64, error) {
	return s.index.DocCount()
}

// Search returns the ids of the posts matching every word of q, as a prefix
// of a word of the title, the content or a tag, and carrying every tag of
// tags. Best matches come first, then most recent posts.
func (s *PostIndex) Search(q string, tags []string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	search := andQ(
		query.NewMatchAllQuery(),
		s.searchText(q),
		termsQuery(tags, "tags"),
	)

	req := bleve.NewSearchRequestOptions(search, limit, 0, false)
	req.SortBy([]string{"-_score", "-_id"})

	res, err := s.index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(res.Hits))
	for i, hit := range res.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

func (s *PostIndex) searchText(q string) query.Query {
	words := strings.Fields(q)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.prefixes(word, "title"),
			s.prefixes(word, "content"),
			prefixQuery(word, "tags"),
		))
	}

	return andQ(ands...)
}

func (s *PostIndex) prefixes(word, field string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(en.AnalyzerName)
	tokens := analyzer.Analyze([]byte(word))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		conjuncs[i] = prefixQuery(string(token.Term), field)
	}
	return query.NewConjunctionQuery(conjuncs)
}

func prefixQuery(prefix, field string) query.Query {
	q := query.NewPrefixQuery(prefix)
	q.SetField(field)
	return q
}

func termsQuery(terms []string, field string) query.Query {
	if len(terms) == 0 {
		return nil
	}

	ands := make([]query.Query, len(terms))
	for i, term := range terms {
		q := query.NewTermQuery(term)
		q.SetField(field)
		ands[i] = q
	}
	return andQ(ands...)
}
