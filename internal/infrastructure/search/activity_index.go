package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// ActivitiesMapping keeps user_id and frequency as exact keywords so filters
// never match across users.
const ActivitiesMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "user_id":     {"type": "keyword"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "frequency":   {"type": "keyword"},
      "start_date":  {"type": "date", "format": "yyyy-MM-dd"},
      "active":      {"type": "boolean"},
      "updated_at":  {"type": "date"}
    }
  }
}`

// ActivityIndex stores activities in one Elasticsearch index.
type ActivityIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewActivityIndex(es *elasticsearch.Client, index string) *ActivityIndex {
	return &ActivityIndex{es: es, index: index}
}

// Ensure creates the index on first start.
func (x *ActivityIndex) Ensure(ctx context.Context) error {
	return helpers.EnsureESIndex(ctx, x.es, x.index, ActivitiesMapping)
}

func (x *ActivityIndex) Index(ctx context.Context, a *entity.Activity) error {
	doc := map[string]any{
		"id":          a.ID,
		"user_id":     a.UserID,
		"title":       a.Title,
		"description": a.Description,
		"frequency":   a.Frequency.String(),
		"start_date":  helpers.FormatDate(a.StartDate),
		"active":      a.Active,
		"updated_at":  a.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index activity %s: %s", a.ID, res.Status())
	}
	return nil
}

// Search matches title and description of the user's active activities.
func (x *ActivityIndex) Search(ctx context.Context, userID, q string, size int) ([]string, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"title^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"user_id": userID}},
					map[string]any{"term": map[string]any{"active": true}},
				},
			},
		},
		"_source": false,
		"size":    size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search activities: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
