package events

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/Tesseract-Nexus/go-shared/events"
	"catalog-service/internal/models"
)

// Publisher wraps the go-shared events publisher for catalog events
type Publisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewPublisher creates a new catalog events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		// Default to GKE internal NATS service URL
		natsURL = "nats://nats.nats.svc.cluster.local:4222"
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "catalog-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher: %w", err)
	}

	// Ensure the products stream exists
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := publisher.EnsureStream(ctx, events.StreamProducts, []string{"product.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure products stream (may already exist)")
	}

	return &Publisher{
		publisher: publisher,
		logger:    logger.WithField("component", "catalog-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.publisher != nil {
		p.publisher.Close()
	}
}

// PublishImportCompleted publishes the report of a committed import
func (p *Publisher) PublishImportCompleted(ctx context.Context, report *models.ImportReport, language string) error {
	event := events.NewProductEvent("product.import_completed", "catalog")
	event.SourceID = uuid.New().String()
	event.ChangeType = "imported"
	event.NewValue = map[string]interface{}{
		"language":            language,
		"itemsInFile":         report.ItemsInFile,
		"newProducts":         report.NewProducts,
		"newProductItems":     report.NewProductItems,
		"productsUpdated":     report.ProductsUpdated,
		"productItemsUpdated": report.ProductItemsUpdated,
		"skippedRows":         report.SkippedRows,
		"duplicateCount":      report.DuplicateCount,
	}
	return p.publish(ctx, event)
}

// PublishProductCreated publishes a product.created event for a product
// minted during an import
func (p *Publisher) PublishProductCreated(ctx context.Context, product *models.Product) error {
	event := events.NewProductEvent(events.ProductCreated, "catalog")
	event.SourceID = uuid.New().String()
	event.ProductID = product.ID.String()
	event.ProductName = product.Code
	event.ChangeType = "created"
	return p.publish(ctx, event)
}

// publish is a helper that logs and publishes events asynchronously
func (p *Publisher) publish(ctx context.Context, event *events.ProductEvent) error {
	// Publish asynchronously to not block the import flow
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := p.publisher.PublishProduct(pubCtx, event); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
			}).WithError(err).Error("Failed to publish catalog event")
		} else {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
			}).Info("Catalog event published successfully")
		}
	}()

	return nil
}
