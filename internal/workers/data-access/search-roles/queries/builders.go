package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// RoleSearchQuery defines the structure of a search request
type RoleSearchQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	RoleID     string
	Family     string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, rq RoleSearchQuery) (*esapi.SearchRequest, error) {
	if rq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch rq.QueryType {
	case "role_index":
		queryBody = buildRoleSearchQuery(rq)
	case "task_index":
		queryBody = buildTaskSearchQuery(rq)
	case "related_roles":
		queryBody = buildRelatedRolesQuery(rq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, rq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{rq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &rq.Pagination.From,
		Size:   &rq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildRoleSearchQuery builds the main role-catalog search query dynamically
func buildRoleSearchQuery(rq RoleSearchQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	// Keyword search
	if keywords, ok := rq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "description^2", "key_responsibilities"},
				"type":   "best_fields",
			},
		})
	}

	// Family filter
	if family, ok := rq.Filters["family"].(string); ok && family != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"family": family},
		})
	} else if rq.Family != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"family": rq.Family},
		})
	}

	// Seniority filter
	if seniority, ok := rq.Filters["seniority"].(string); ok && seniority != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"seniority": seniority},
		})
	}

	// Composite score range filter
	if scoreRange, ok := rq.Filters["scoreRange"].(map[string]interface{}); ok {
		rangeClause := map[string]interface{}{}
		if min, exists := toFloat(scoreRange["min"]); exists {
			rangeClause["gte"] = min
		}
		if max, exists := toFloat(scoreRange["max"]); exists {
			rangeClause["lte"] = max
		}
		if len(rangeClause) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"range": map[string]interface{}{"composite_now": rangeClause},
			})
		}
	}

	// Default match_all if no keyword
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	// Sorting logic
	if sortBy, ok := rq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "composite_now":
			query["sort"] = []map[string]interface{}{{"composite_now": "desc"}}
		case "composite_future":
			query["sort"] = []map[string]interface{}{{"composite_future": "desc"}}
		case "name":
			query["sort"] = []map[string]interface{}{{"name": "asc"}}
		}
	}

	return query
}

// buildTaskSearchQuery searches the task catalog by keyword and owning role
func buildTaskSearchQuery(rq RoleSearchQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := rq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^2", "description"},
				"type":   "best_fields",
			},
		})
	}

	if rq.RoleID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"role_id": rq.RoleID},
		})
	}

	if frequency, ok := rq.Filters["frequency"].(string); ok && frequency != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"frequency": frequency},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}

// buildRelatedRolesQuery builds a "similar roles" query
func buildRelatedRolesQuery(rq RoleSearchQuery) map[string]interface{} {
	if rq.RoleID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"name", "description", "family"},
				"like": []map[string]interface{}{
					{"_index": rq.Index, "_id": rq.RoleID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
