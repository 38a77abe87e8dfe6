// Package elastic maintains the booking search projection in Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"freight/internal/core/ports"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/pkg/errors"
)

const bookingMapping = `{
	"mappings": {
		"properties": {
			"id":                    {"type": "keyword"},
			"organization_id":       {"type": "keyword"},
			"lr_number":             {"type": "keyword"},
			"lr_type":               {"type": "keyword"},
			"status":                {"type": "keyword"},
			"origin_branch_id":      {"type": "keyword"},
			"destination_branch_id": {"type": "keyword"},
			"sender":                {"type": "text"},
			"receiver":              {"type": "text"},
			"article":               {"type": "text"},
			"quantity":              {"type": "integer"},
			"created_at":            {"type": "date"},
			"updated_at":            {"type": "date"}
		}
	}
}`

type Config struct {
	URL      string
	Username string
	Password string
	Index    string
}

// BookingIndex implements ports.BookingIndex. Documents are keyed by
// booking id, so replaying an outbox message overwrites instead of
// duplicating.
type BookingIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewBookingIndex(cfg Config) (*BookingIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	index := cfg.Index
	if index == "" {
		index = "freight-bookings"
	}
	return &BookingIndex{client: client, index: index}, nil
}

// EnsureIndex creates the index with its mapping unless it exists.
func (i *BookingIndex) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(ctx, i.client)
	if err != nil {
		return errors.Wrap(err, "failed to check Elasticsearch index")
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{
		Index: i.index,
		Body:  bytes.NewReader([]byte(bookingMapping)),
	}.Do(ctx, i.client)
	if err != nil {
		return errors.Wrap(err, "failed to create Elasticsearch index")
	}
	defer res.Body.Close()
	return responseError(res, "create index")
}

func (i *BookingIndex) Index(ctx context.Context, doc ports.BookingDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal booking document")
	}

	res, err := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
	}.Do(ctx, i.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch index request")
	}
	defer res.Body.Close()
	return responseError(res, "index booking")
}

// UpdateStatus patches status and updated_at. A booking that was never
// indexed is skipped; the projection is rebuilt from booking.created
// messages, not from status changes.
func (i *BookingIndex) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	body, err := json.Marshal(map[string]any{
		"doc": map[string]any{
			"status":     status,
			"updated_at": updatedAt.UTC(),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal status update")
	}

	res, err := esapi.UpdateRequest{
		Index:      i.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}.Do(ctx, i.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch update request")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError(res, "update booking status")
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source ports.BookingDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search matches text against the LR number (exact) and the parties and
// article (full text), scoped to one organization.
func (i *BookingIndex) Search(ctx context.Context, q ports.BookingSearch) ([]ports.BookingDocument, error) {
	filters := []map[string]any{
		{"term": map[string]any{"organization_id": q.OrganizationID}},
	}
	if q.Status != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"status": q.Status}})
	}

	query := map[string]any{
		"size": q.Limit,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": filters,
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q.Text,
						"fields": []string{"lr_number^3", "sender", "receiver", "article"},
					},
				},
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal search query")
	}

	res, err := esapi.SearchRequest{
		Index: []string{i.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, i.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute Elasticsearch search request")
	}
	defer res.Body.Close()

	if err = responseError(res, "search bookings"); err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to parse Elasticsearch search response")
	}

	docs := make([]ports.BookingDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

func responseError(res *esapi.Response, operation string) error {
	if !res.IsError() {
		return nil
	}
	raw, _ := io.ReadAll(res.Body)
	return errors.Errorf("Elasticsearch %s failed: %s %s", operation, res.Status(), bytes.TrimSpace(raw))
}
