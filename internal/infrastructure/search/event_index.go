package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/gym-backend/internal/application"
	"github.com/oksasatya/gym-backend/internal/domain/entity"
)

type eventDoc struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Name              string    `json:"name"`
	Date              string    `json:"date"`
	NumOfParticipants int       `json:"numOfParticipants"`
	ModeOfPayment     string    `json:"modeOfPayment"`
	CreatedAt         time.Time `json:"createdAt"`
}

// EventIndex mirrors events into an Elasticsearch index for full-text search.
type EventIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewEventIndex(es *elasticsearch.Client, index string) *EventIndex {
	return &EventIndex{es: es, index: index, timeout: 3 * time.Second}
}

func (x *EventIndex) Index(ctx context.Context, e *entity.Event) error {
	b, err := json.Marshal(eventDoc{
		ID: e.ID, Title: e.Title, Name: e.Name, Date: e.Date,
		NumOfParticipants: e.NumOfParticipants, ModeOfPayment: e.ModeOfPayment, CreatedAt: e.CreatedAt,
	})
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.IndexRequest{Index: x.index, DocumentID: e.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", e.ID, res.Status())
	}
	return nil
}

func (x *EventIndex) Remove(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := esapi.DeleteRequest{Index: x.index, DocumentID: id}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search performs a multi_match over title, name and payment mode.
func (x *EventIndex) Search(ctx context.Context, q string, size int) ([]*entity.Event, error) {
	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "name", "modeOfPayment"},
			},
		},
		"size": size,
	})
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("es search: %s: %s", res.Status(), msg)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source eventDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.Event, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, &entity.Event{
			ID: d.ID, Title: d.Title, Name: d.Name, Date: d.Date,
			NumOfParticipants: d.NumOfParticipants, ModeOfPayment: d.ModeOfPayment, CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}

var _ application.EventIndex = (*EventIndex)(nil)
