package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/config"
	"example.com/fleet/services/rental/internal/models"
)

// ElasticClient provides integration with Elasticsearch
type ElasticClient struct {
	client *elasticsearch.Client
	config config.ElasticConfig
}

// NewElasticClient creates a new Elasticsearch client
func NewElasticClient(cfg config.ElasticConfig) (*ElasticClient, error) {
	esConfig := elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	}

	client, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	return &ElasticClient{
		client: client,
		config: cfg,
	}, nil
}

// IndexRental indexes a denormalized rental document
func (c *ElasticClient) IndexRental(ctx context.Context, view *models.RentalView) error {
	log.Info().Uint("rental_id", view.ID).Msg("indexing rental")

	doc := map[string]interface{}{
		"id":                   view.ID,
		"pickup_date":          view.PickupDate,
		"expected_return_date": view.ExpectedReturnDate,
		"actual_return_date":   view.ActualReturnDate,
		"daily_rate":           view.DailyRate,
		"total_charge":         view.TotalCharge,
		"status":               view.Status,
		"customer_id":          view.CustomerID,
		"customer_name":        view.CustomerName,
		"customer_email":       view.CustomerEmail,
		"vehicle_id":           view.VehicleID,
		"vehicle_model":        view.VehicleModel,
		"vehicle_plate":        view.VehiclePlate,
		"manufacturer_name":    view.ManufacturerName,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal rental document")
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: fmt.Sprintf("%d", view.ID),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to index rental document")
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Errorf("indexing rental %d failed: %s", view.ID, res.String())
	}

	return nil
}

// DeleteRental removes a rental document from the index
func (c *ElasticClient) DeleteRental(ctx context.Context, id uint) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: fmt.Sprintf("%d", id),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to delete rental document")
	}
	defer res.Body.Close()

	// A missing document is fine; the index simply never saw it
	if res.IsError() && res.StatusCode != 404 {
		return errors.Errorf("deleting rental %d from index failed: %s", id, res.String())
	}

	return nil
}
