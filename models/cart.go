package models

import (
	"errors"
	"sort"
)

// Directions accepted by Cart.Adjust.
const (
	DirectionPlus  = "plus"
	DirectionMinus = "minus"
)

var ErrInvalidDirection = errors.New("direction must be plus or minus")

// Cart maps food ids to quantities. Entries are always positive; the zero value
// is an empty cart ready to use. Ids are not checked against the catalog here.
type Cart struct {
	items map[uint]int
	dirty bool
}

// NewCart builds a cart from a stored mapping, dropping non-positive quantities.
func NewCart(items map[uint]int) *Cart {
	c := &Cart{items: make(map[uint]int, len(items))}
	for id, qty := range items {
		if qty > 0 {
			c.items[id] = qty
		}
	}
	return c
}

func (c *Cart) touch() {
	if c.items == nil {
		c.items = make(map[uint]int)
	}
	c.dirty = true
}

// Add increments the quantity of foodID and returns the new quantity.
func (c *Cart) Add(foodID uint) int {
	c.touch()
	c.items[foodID]++
	return c.items[foodID]
}

func (c *Cart) Remove(foodID uint) {
	c.touch()
	delete(c.items, foodID)
}

// Adjust moves the quantity of an existing entry by one. The entry is removed
// when it reaches zero. Ids not in the cart are left alone.
func (c *Cart) Adjust(foodID uint, direction string) (int, error) {
	if direction != DirectionPlus && direction != DirectionMinus {
		return c.Quantity(foodID), ErrInvalidDirection
	}
	c.touch()
	qty, ok := c.items[foodID]
	if !ok {
		return 0, nil
	}
	if direction == DirectionPlus {
		qty++
	} else {
		qty--
	}
	if qty <= 0 {
		delete(c.items, foodID)
		return 0, nil
	}
	c.items[foodID] = qty
	return qty, nil
}

func (c *Cart) Quantity(foodID uint) int {
	return c.items[foodID]
}

// Contents returns a copy of the mapping.
func (c *Cart) Contents() map[uint]int {
	out := make(map[uint]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

// IDs returns the food ids in ascending order.
func (c *Cart) IDs() []uint {
	ids := make([]uint, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count is the total number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, qty := range c.items {
		n += qty
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	c.touch()
	c.items = make(map[uint]int)
}

// Dirty reports whether the cart changed since it was loaded.
func (c *Cart) Dirty() bool {
	return c.dirty
}

func (c *Cart) MarkClean() {
	c.dirty = false
}
