// Package search keeps the Elasticsearch products index in step with the
// catalog.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
)

const (
	requestTimeout    = 3 * time.Second
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type ProductIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewProductIndex(es *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{ES: es, IndexName: index}
}

type productDoc struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Desc      string  `json:"desc"`
	Specs     string  `json:"specs"`
	Image     string  `json:"image"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func (d productDoc) toEntity() entity.Product {
	p := entity.Product{
		ID:       d.ID,
		Name:     d.Name,
		Category: d.Category,
		Price:    d.Price,
		Desc:     d.Desc,
		Specs:    d.Specs,
		Image:    d.Image,
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, d.CreatedAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, d.UpdatedAt)
	return p
}

func (x *ProductIndex) Index(ctx context.Context, p entity.Product) error {
	b, err := json.Marshal(productDoc{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Desc:      p.Desc,
		Specs:     p.Specs,
		Image:     p.Image,
		CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", p.ID, res.Status())
	}
	return nil
}

// Remove deletes the product document. A missing document is not an error.
func (x *ProductIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match query over the text fields, name weighted
// highest.
func (x *ProductIndex) Search(ctx context.Context, q string, size int) ([]entity.Product, error) {
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "category", "desc", "specs"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string     `json:"_id"`
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p := h.Source.toEntity()
		if p.ID == "" {
			p.ID = h.ID
		}
		out = append(out, p)
	}
	return out, nil
}
