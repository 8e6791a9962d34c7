package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type StartupRepo interface {
	SearchStartups(ctx context.Context, queryText string, from, size int) ([]*StartupES, error)
	IndexStartup(ctx context.Context, startup *StartupES) error
	DeleteStartup(ctx context.Context, id uint64) error
}

type StartupRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewStartupRepo(client *elasticsearch.TypedClient) StartupRepo {
	return &StartupRepoImpl{client: client}
}

// SearchStartups 按名称/简介全文检索
func (s *StartupRepoImpl) SearchStartups(ctx context.Context, queryText string, from, size int) ([]*StartupES, error) {
	if from >= MaxSearchDepth {
		return []*StartupES{}, nil
	}

	req := s.client.Search().Index(StartupIndex).From(from).Size(size)
	req.Query(&types.Query{
		MultiMatch: &types.MultiMatchQuery{
			Query:  queryText,
			Fields: []string{"name^2", "pitch"},
		},
	})

	res, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*StartupES, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc StartupES
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, err
		}
		list = append(list, &doc)
	}
	return list, nil
}

// IndexStartup 写入/覆盖索引文档
func (s *StartupRepoImpl) IndexStartup(ctx context.Context, startup *StartupES) error {
	docID := strconv.FormatUint(startup.ID, 10)
	_, err := s.client.Index(StartupIndex).Id(docID).Document(startup).Do(ctx)
	return err
}

// DeleteStartup 删除索引文档，文档不存在视为成功
func (s *StartupRepoImpl) DeleteStartup(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)
	_, err := s.client.Delete(StartupIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == 404 {
			return nil
		}
		return err
	}
	return nil
}
