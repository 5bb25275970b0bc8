package relay

import (
	"testing"

	"foodorder/internal/domain"
	"foodorder/internal/storage"

	"github.com/stretchr/testify/assert"
)

func order(id string, status domain.Status) domain.Order {
	return domain.Order{ID: id, TableID: "3", Status: status, Total: 130000}
}

func TestBoardOrderCreated(t *testing.T) {
	b := NewBoard()
	b.OrderCreated(order("1", domain.StatusPending))
	b.OrderCreated(order("2", domain.StatusPending))

	orders := b.Orders()
	assert.Len(t, orders, 2)
	assert.Equal(t, "2", orders[0].ID, "most recent first")

	alert := b.Alert()
	assert.NotNil(t, alert)
	assert.Equal(t, "2", alert.ID, "new creation overwrites the alert")
}

func TestBoardDedupesRepeatedCreations(t *testing.T) {
	b := NewBoard()
	b.OrderCreated(order("1", domain.StatusPending))
	b.OrderCreated(order("1", domain.StatusPending))

	assert.Len(t, b.Orders(), 1)
}

func TestBoardLoadSeedsDedupe(t *testing.T) {
	b := NewBoard()
	b.Load([]domain.Order{order("1", domain.StatusCooking)})
	b.OrderCreated(order("1", domain.StatusPending))

	orders := b.Orders()
	assert.Len(t, orders, 1)
	assert.Equal(t, domain.StatusCooking, orders[0].Status)
}

func TestBoardStatusChanged(t *testing.T) {
	b := NewBoard()
	b.OrderCreated(order("1", domain.StatusPending))

	b.StatusChanged("1", domain.StatusCooking)
	assert.Equal(t, domain.StatusCooking, b.Orders()[0].Status)

	// unknown ID is dropped silently
	b.StatusChanged("missing", domain.StatusPaid)
	assert.Len(t, b.Orders(), 1)
}

func TestBoardDismissAlert(t *testing.T) {
	b := NewBoard()
	b.OrderCreated(order("1", domain.StatusPending))

	b.DismissAlert()
	assert.Nil(t, b.Alert())
	assert.Len(t, b.Orders(), 1, "dismissing does not touch the list")
}

func TestBusRoutesByCollectionAndKind(t *testing.T) {
	bus := NewBus()
	var inserts, updates int
	bus.Subscribe(CollectionOrders, EventInsert, func(Event) { inserts++ })
	sub := bus.Subscribe(CollectionOrders, EventUpdate, func(Event) { updates++ })

	o := order("1", domain.StatusPending)
	bus.Publish(Event{Collection: CollectionOrders, Kind: EventInsert, Order: &o})
	bus.Publish(Event{Collection: CollectionOrders, Kind: EventUpdate, OrderID: "1", Status: domain.StatusCooking})
	bus.Publish(Event{Collection: "menu_items", Kind: EventInsert})

	assert.Equal(t, 1, inserts)
	assert.Equal(t, 1, updates)

	bus.Unsubscribe(sub)
	bus.Publish(Event{Collection: CollectionOrders, Kind: EventUpdate})
	assert.Equal(t, 1, updates)
}

func TestBoardAttachedToBus(t *testing.T) {
	bus := NewBus()
	b := NewBoard()
	b.Attach(bus)

	o := order("1", domain.StatusPending)
	bus.Publish(Event{Collection: CollectionOrders, Kind: EventInsert, Order: &o})
	bus.Publish(Event{Collection: CollectionOrders, Kind: EventUpdate, OrderID: "1", Status: domain.StatusCooking})

	orders := b.Orders()
	assert.Len(t, orders, 1)
	assert.Equal(t, domain.StatusCooking, orders[0].Status)
}

func TestToEvent(t *testing.T) {
	o := order("1", domain.StatusPending)
	tests := []struct {
		name       string
		msg        storage.OrderFeedMessage
		wantOK     bool
		collection string
		kind       EventKind
	}{
		{name: "created", msg: storage.OrderFeedMessage{Type: storage.FeedOrderCreated, Order: &o}, wantOK: true, collection: CollectionOrders, kind: EventInsert},
		{name: "status changed", msg: storage.OrderFeedMessage{Type: storage.FeedStatusChanged, OrderID: "1", Status: domain.StatusCooking}, wantOK: true, collection: CollectionOrders, kind: EventUpdate},
		{name: "menu changed", msg: storage.OrderFeedMessage{Type: storage.FeedMenuChanged, MenuItemID: "a"}, wantOK: true, collection: CollectionMenuItems, kind: EventUpdate},
		{name: "created without payload", msg: storage.OrderFeedMessage{Type: storage.FeedOrderCreated}, wantOK: false},
		{name: "unknown type", msg: storage.OrderFeedMessage{Type: "noise"}, wantOK: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ev, ok := toEvent(testCase.msg)
			assert.Equal(t, testCase.wantOK, ok)
			if ok {
				assert.Equal(t, testCase.collection, ev.Collection)
				assert.Equal(t, testCase.kind, ev.Kind)
			}
		})
	}
}

func TestBusRoutesMenuEvents(t *testing.T) {
	bus := NewBus()
	var items []string
	bus.Subscribe(CollectionMenuItems, EventUpdate, func(ev Event) { items = append(items, ev.ItemID) })

	bus.Publish(Event{Collection: CollectionMenuItems, Kind: EventUpdate, ItemID: "a"})
	bus.Publish(Event{Collection: CollectionOrders, Kind: EventUpdate, OrderID: "1"})

	assert.Equal(t, []string{"a"}, items)
}
