package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vtube-go/internal/config"
)

// maxSearchResults 不分页，单次最多返回的文档数（ES 默认 max_result_window）
const maxSearchResults = 10000

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// BuildVideoSearchQuery 构造 title/description/category 任一字段大小写无关子串匹配的查询。
// latest 为 true 时按上传时间倒序，否则按相关度
func BuildVideoSearchQuery(query string, latest bool) map[string]interface{} {
	pattern := "*" + wildcardEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "*"

	should := make([]interface{}, 0, 3)
	for _, field := range []string{"title.raw", "description.raw", "category.raw"} {
		should = append(should, map[string]interface{}{
			"wildcard": map[string]interface{}{
				field: map[string]interface{}{
					"value":            pattern,
					"case_insensitive": true,
				},
			},
		})
	}

	sortConfig := []interface{}{}
	if !latest {
		sortConfig = append(sortConfig, map[string]interface{}{"_score": map[string]string{"order": "desc"}})
	}
	sortConfig = append(sortConfig, map[string]interface{}{"upload_date": map[string]string{"order": "desc"}})

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
		"_source": []string{"id"},
		"size":    maxSearchResults,
		"sort":    sortConfig,
	}
}

// SearchVideoIDs 搜索视频，按排序返回视频 ID
func SearchVideoIDs(ctx context.Context, query string, latest bool) ([]string, error) {
	indexName := config.GetElasticsearch().VideosIndex()

	body, err := json.Marshal(BuildVideoSearchQuery(query, latest))
	if err != nil {
		return nil, err
	}

	resp, err := Search(ctx, indexName, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID string `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		if h.Source.ID != "" {
			ids = append(ids, h.Source.ID)
		}
	}
	return ids, nil
}
