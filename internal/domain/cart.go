package domain

import "sync"

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) UnitPrice() int64 { return i.Product.Price }
func (i CartItem) Units() int       { return i.Quantity }

// Cart holds pre-purchase lines keyed by product id. Every mutation notifies
// subscribers synchronously with the resulting items.
type Cart struct {
	mu     sync.Mutex
	order  []uint64
	items  map[uint64]*CartItem
	subs   map[int]func([]CartItem)
	nextID int
}

func NewCart() *Cart {
	return &Cart{
		items: make(map[uint64]*CartItem),
		subs:  make(map[int]func([]CartItem)),
	}
}

// Subscribe registers fn and returns a func that removes it.
func (c *Cart) Subscribe(fn func([]CartItem)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cart) Add(p Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mutate(func() {
		if it, ok := c.items[p.ID]; ok {
			it.Quantity += qty
			it.Product = p
			return
		}
		c.items[p.ID] = &CartItem{Product: p, Quantity: qty}
		c.order = append(c.order, p.ID)
	})
}

func (c *Cart) SetQuantity(productID uint64, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	c.mutate(func() {
		if it, ok := c.items[productID]; ok {
			it.Quantity = qty
		}
	})
}

func (c *Cart) Remove(productID uint64) {
	c.mutate(func() {
		if _, ok := c.items[productID]; !ok {
			return
		}
		delete(c.items, productID)
		for i, id := range c.order {
			if id == productID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	})
}

func (c *Cart) Clear() {
	c.mutate(func() {
		c.items = make(map[uint64]*CartItem)
		c.order = nil
	})
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items() {
		total += it.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() int64 {
	return CartTotal(c.Items())
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) mutate(fn func()) {
	c.mu.Lock()
	fn()
	snap := c.snapshotLocked()
	subs := make([]func([]CartItem), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

func (c *Cart) snapshotLocked() []CartItem {
	out := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}
