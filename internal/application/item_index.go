package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/domain/entity"
)

// ItemIndex mirrors items into Elasticsearch for full-text search.
// Postgres stays the source of truth; index writes are best effort and
// logged, never surfaced to the caller.
type ItemIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

type itemDoc struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	TitleForURL string         `json:"title_for_url"`
	Template    string         `json:"template"`
	CreatedBy   string         `json:"created_by"`
	Properties  map[string]any `json:"properties"`
	UpdatedAt   string         `json:"updated_at"`
}

func (x *ItemIndex) enabled() bool { return x != nil && x.ES != nil }

// Put indexes or reindexes one item.
func (x *ItemIndex) Put(ctx context.Context, item entity.Item) {
	if !x.enabled() {
		return
	}
	doc := itemDoc{
		ID:          string(item.ID),
		Title:       string(item.Title),
		TitleForURL: item.TitleForURL,
		Template:    string(item.Template),
		CreatedBy:   string(item.CreatedBy),
		Properties:  item.Properties,
		UpdatedAt:   item.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		x.Logger.WithError(err).WithField("item_id", item.ID).Warn("marshal item doc failed")
		return
	}
	req := esapi.IndexRequest{
		Index:      x.Index,
		DocumentID: string(item.ID),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		x.Logger.WithError(err).WithField("item_id", item.ID).Warn("index item failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		x.Logger.WithField("item_id", item.ID).WithField("status", res.StatusCode).Warn("index item rejected")
	}
}

// Delete removes one item from the index.
func (x *ItemIndex) Delete(ctx context.Context, id entity.ItemID) {
	if !x.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: string(id)}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		x.Logger.WithError(err).WithField("item_id", id).Warn("delete item from index failed")
		return
	}
	defer res.Body.Close()
}

// DeleteByGroup drops every document the group created; used when a
// group is deleted.
func (x *ItemIndex) DeleteByGroup(ctx context.Context, groupID entity.GroupID) {
	if !x.enabled() {
		return
	}
	query := fmt.Sprintf(`{"query":{"term":{"created_by":%q}}}`, string(groupID))
	res, err := x.ES.DeleteByQuery([]string{x.Index}, strings.NewReader(query), x.ES.DeleteByQuery.WithContext(ctx))
	if err != nil {
		x.Logger.WithError(err).WithField("group_id", groupID).Warn("delete group items from index failed")
		return
	}
	defer res.Body.Close()
}

// SearchHit is one search result with its relevance score.
type SearchHit struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Search runs a multi-field match over titles and properties.
func (x *ItemIndex) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if !x.enabled() {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	body := map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^2", "properties.*"},
			},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search failed: %s", strings.TrimSpace(string(msg)))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64 `json:"_score"`
				Source itemDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, SearchHit{ID: h.Source.ID, Title: h.Source.Title, Score: h.Score})
	}
	return hits, nil
}
