// Package es 负责课程目录在 Elasticsearch 中的索引与检索。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/log"
)

// courseMapping stores every searchable field as a keyword so wildcard
// queries match substrings of the original text.
const courseMapping = `{
	"mappings": {
		"properties": {
			"id":          { "type": "keyword" },
			"title":       { "type": "keyword" },
			"description": { "type": "keyword" },
			"modules":     { "type": "keyword" },
			"level":       { "type": "keyword" },
			"duration":    { "type": "keyword", "index": false },
			"price":       { "type": "keyword", "index": false },
			"icon":        { "type": "keyword", "index": false }
		}
	}
}`

// CourseIndex is the catalogue index.
type CourseIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewCourseIndex 连接 Elasticsearch，索引不存在时自动创建
func NewCourseIndex(esCfg config.ElasticsearchConfig) (*CourseIndex, error) {
	cfg := elasticsearch.Config{
		Addresses: strings.Split(esCfg.Addresses, ","),
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	idx := &CourseIndex{client: client, index: esCfg.IndexName}
	if err := idx.createIndexIfNotExists(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (i *CourseIndex) createIndexIfNotExists() error {
	res, err := i.client.Indices.Exists([]string{i.index})
	if err != nil {
		return fmt.Errorf("failed to check index %q: %w", i.index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		log.Infof("index '%s' already exists", i.index)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d checking index %q", res.StatusCode, i.index)
	}

	res, err = i.client.Indices.Create(i.index, i.client.Indices.Create.WithBody(strings.NewReader(courseMapping)))
	if err != nil {
		return fmt.Errorf("failed to create index %q: %w", i.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch refused to create index %q: %s", i.index, res.String())
	}
	log.Infof("index '%s' created", i.index)
	return nil
}

// IndexCourses 批量写入课程，相同 id 的文档会被覆盖
func (i *CourseIndex) IndexCourses(ctx context.Context, courses []model.Course) error {
	for _, c := range courses {
		docBytes, err := json.Marshal(c)
		if err != nil {
			return err
		}
		req := esapi.IndexRequest{
			Index:      i.index,
			DocumentID: c.ID,
			Body:       bytes.NewReader(docBytes),
			Refresh:    "true",
		}
		res, err := req.Do(ctx, i.client)
		if err != nil {
			return fmt.Errorf("failed to index course %s: %w", c.ID, err)
		}
		isErr := res.IsError()
		status := res.String()
		res.Body.Close()
		if isErr {
			log.Errorf("indexing course %s failed: %s", c.ID, status)
			return errors.New("failed to index course")
		}
	}
	return nil
}

// SearchCourseIDs returns the ids of courses matching q. Hit order is not meaningful.
func (i *CourseIndex) SearchCourseIDs(ctx context.Context, q model.CourseQuery) ([]string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildSearchQuery(q)); err != nil {
		return nil, err
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search returned error: %s", res.String())
	}

	var out struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	ids := make([]string, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func buildSearchQuery(q model.CourseQuery) map[string]interface{} {
	boolQuery := map[string]interface{}{}
	if q.Level != "" && q.Level != model.LevelAll {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"level": string(q.Level)}},
		}
	}
	if q.Search != "" {
		pattern := "*" + escapeWildcard(q.Search) + "*"
		var should []interface{}
		for _, field := range []string{"title", "description", "modules"} {
			should = append(should, map[string]interface{}{
				"wildcard": map[string]interface{}{
					field: map[string]interface{}{"value": pattern, "case_insensitive": true},
				},
			})
		}
		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = 1
	}
	return map[string]interface{}{
		"size":    100,
		"_source": false,
		"query":   map[string]interface{}{"bool": boolQuery},
	}
}

func escapeWildcard(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}
