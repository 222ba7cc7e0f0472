package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
)

var ErrSearchFailed = errors.New("search request failed")

// QueryResult holds decoded search hits and metadata
type QueryResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// Execute builds and runs a search request, returning decoded hits
func Execute(ctx context.Context, esClient *elasticsearch.Client, queryType, index string, params map[string]interface{}) (*QueryResult, error) {
	rq := RoleSearchQuery{
		Index:     index,
		QueryType: queryType,
		Filters:   map[string]interface{}{},
	}

	if filters, ok := params["filters"].(map[string]interface{}); ok {
		rq.Filters = filters
	}
	if roleID, ok := params["roleId"].(string); ok {
		rq.RoleID = roleID
	}
	if family, ok := params["family"].(string); ok {
		rq.Family = family
	}

	// Pagination with sane bounds
	rq.Pagination.From = 0
	rq.Pagination.Size = 20
	if from, ok := toFloat(params["from"]); ok && from >= 0 {
		rq.Pagination.From = int(from)
	}
	if size, ok := toFloat(params["size"]); ok {
		if size < 1 {
			size = 1
		}
		if size > 100 {
			size = 100
		}
		rq.Pagination.Size = int(size)
	}

	req, err := BuildQuery(esClient, rq)
	if err != nil {
		return nil, err
	}

	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: status %s: %s", ErrSearchFailed, res.Status(), string(body))
	}

	var envelope struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			MaxScore *float64 `json:"max_score"`
			Hits     []struct {
				ID     string                 `json:"_id"`
				Score  *float64               `json:"_score"`
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	result := &QueryResult{
		TotalHits: envelope.Hits.Total.Value,
		Took:      envelope.Took,
		Data:      make([]map[string]interface{}, 0, len(envelope.Hits.Hits)),
	}
	if envelope.Hits.MaxScore != nil {
		result.MaxScore = *envelope.Hits.MaxScore
	}

	for _, hit := range envelope.Hits.Hits {
		doc := hit.Source
		if doc == nil {
			doc = map[string]interface{}{}
		}
		doc["_id"] = hit.ID
		if hit.Score != nil {
			doc["_score"] = *hit.Score
		}
		result.Data = append(result.Data, doc)
	}

	return result, nil
}
