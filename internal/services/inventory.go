package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/invtrack/apiserver/internal/cache"
	"github.com/invtrack/apiserver/types"
)

// The full listing is cached under a single key; any item change invalidates
// the whole artifact rather than patching it in place.
const (
	listingKey = "inventory_list"
	listingTTL = 60 * time.Second
)

const maxNameLength = 100

// Listing source tags reported to clients.
const (
	SourceCache    = "cache"
	SourceDatabase = "database"
)

// ItemRepository defines persistence operations for inventory items.
type ItemRepository interface {
	List(ctx context.Context) ([]types.Item, error)
	Create(ctx context.Context, name string, quantity int) error
	UpdateQuantity(ctx context.Context, name string, quantity int) error
	Delete(ctx context.Context, name string) error
}

// EventPublisher publishes inventory change events to a broker channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// Listing is a snapshot of the full inventory plus where it came from.
type Listing struct {
	Source string
	Items  []types.Item
}

// InventoryService implements the cache-aside read path and the
// write-then-invalidate path over the store.
type InventoryService struct {
	repo        ItemRepository
	cache       cache.Cache
	events      EventPublisher
	eventsQueue string
	log         *slog.Logger
}

// NewInventoryService wires the service. events may be nil to disable change
// event publishing.
func NewInventoryService(repo ItemRepository, c cache.Cache, events EventPublisher, eventsQueue string, log *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:        repo,
		cache:       c,
		events:      events,
		eventsQueue: eventsQueue,
		log:         log,
	}
}

// List returns all items ordered by name. A fresh cached listing is served
// directly; on a miss the store is queried and the result cached for the TTL.
// Cache faults on either side are treated as misses: the store is the
// authority and a broken cache must not break reads.
func (s *InventoryService) List(ctx context.Context) (Listing, error) {
	cached, ok, err := s.cache.Get(ctx, listingKey)
	if err != nil {
		s.log.Warn("cache get failed, falling through to store", "key", listingKey, "error", err)
		ok = false
	}
	if ok {
		var items []types.Item
		if err := json.Unmarshal(cached, &items); err == nil {
			return Listing{Source: SourceCache, Items: items}, nil
		}
		s.log.Warn("discarding undecodable cached listing", "key", listingKey, "error", err)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return Listing{}, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := s.cache.Set(ctx, listingKey, data, listingTTL); err != nil {
			s.log.Warn("failed to populate listing cache", "key", listingKey, "error", err)
		}
	}

	return Listing{Source: SourceDatabase, Items: items}, nil
}

// Create inserts a new item and invalidates the cached listing. Duplicate
// names surface as store.ErrConflict.
func (s *InventoryService) Create(ctx context.Context, name string, quantity int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, name, quantity); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, changeEvent{Action: "created", Name: name, Quantity: &quantity})
	return nil
}

// Update sets the quantity of an existing item. When the name does not match
// any row the cache is left untouched, since nothing changed.
func (s *InventoryService) Update(ctx context.Context, name string, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	if err := s.repo.UpdateQuantity(ctx, name, quantity); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, changeEvent{Action: "updated", Name: name, Quantity: &quantity})
	return nil
}

// Delete removes an item and invalidates the cached listing.
func (s *InventoryService) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, changeEvent{Action: "deleted", Name: name})
	return nil
}

// invalidate drops the cached listing after a committed write. The store
// commit already happened, so a failed delete only widens the staleness
// window until the TTL expires; it must not fail the write.
func (s *InventoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, listingKey); err != nil {
		s.log.Warn("failed to invalidate listing cache", "key", listingKey, "error", err)
	}
}

type changeEvent struct {
	Action   string `json:"action"`
	Name     string `json:"name"`
	Quantity *int   `json:"quantity,omitempty"`
}

func (s *InventoryService) publish(ctx context.Context, event changeEvent) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if _, err := s.events.Publish(ctx, s.eventsQueue, data, map[string]string{"action": event.Action}); err != nil {
		s.log.Warn("failed to publish change event", "action", event.Action, "name", event.Name, "error", err)
	}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, maxNameLength)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	return nil
}
