package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Subjects for catalog change events
const (
	SubjectProductCreated  = "catalog.product.created"
	SubjectProductUpdated  = "catalog.product.updated"
	SubjectProductDeleted  = "catalog.product.deleted"
	SubjectCategoryChanged = "catalog.category.changed"
	SubjectStockChanged    = "catalog.product.stock_changed"
)

// CatalogEvent is the payload published on every catalog change
type CatalogEvent struct {
	EventType string    `json:"event_type"`
	EntityID  string    `json:"entity_id"`
	Slug      string    `json:"slug,omitempty"`
	Name      string    `json:"name,omitempty"`
	Stock     *int      `json:"stock,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits catalog events over NATS. A nil Publisher is valid and
// drops every event, so callers never need to guard for a disabled broker.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. An empty URL disables publishing.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		logger.Warn("NATS_URL not set, event publishing disabled")
		return nil, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("catalog-service-publisher"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS events publisher initialized for catalog-service")
	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

func (p *Publisher) publish(subject string, event CatalogEvent) {
	if p == nil || p.conn == nil {
		return
	}
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to publish event")
	}
}

// PublishProductCreated emits a product created event
func (p *Publisher) PublishProductCreated(id, slug, name string) {
	p.publish(SubjectProductCreated, CatalogEvent{EventType: "product.created", EntityID: id, Slug: slug, Name: name})
}

// PublishProductUpdated emits a product updated event
func (p *Publisher) PublishProductUpdated(id, slug, name string) {
	p.publish(SubjectProductUpdated, CatalogEvent{EventType: "product.updated", EntityID: id, Slug: slug, Name: name})
}

// PublishProductDeleted emits a product deleted event
func (p *Publisher) PublishProductDeleted(id, slug string) {
	p.publish(SubjectProductDeleted, CatalogEvent{EventType: "product.deleted", EntityID: id, Slug: slug})
}

// PublishStockChanged emits a stock level change event
func (p *Publisher) PublishStockChanged(id, slug string, stock int) {
	p.publish(SubjectStockChanged, CatalogEvent{EventType: "product.stock_changed", EntityID: id, Slug: slug, Stock: &stock})
}

// PublishCategoryChanged emits a category or subcategory change event
func (p *Publisher) PublishCategoryChanged(id, slug, name string) {
	p.publish(SubjectCategoryChanged, CatalogEvent{EventType: "category.changed", EntityID: id, Slug: slug, Name: name})
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
