package schema

import (
	"maps"
	"reflect"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// Inventory holds the fields of every block that stores items and can be
// locked or filled from a loot table.
type Inventory struct {
	CustomName    *string `json:",omitempty"`
	Items         []Item
	Lock          *string `json:",omitempty"`
	LootTable     *string `json:",omitempty"`
	LootTableSeed *int64  `json:",omitempty"`
}

func (inv *Inventory) fields() []Field {
	return []Field{
		Optional("CustomName", &inv.CustomName, nbt.AsString),
		OrZero("Items", &inv.Items, itemList),
		Optional("Lock", &inv.Lock, nbt.AsString),
		Optional("LootTable", &inv.LootTable, nbt.AsString),
		Optional("LootTableSeed", &inv.LootTableSeed, nbt.AsLong),
	}
}

// Cooking holds the furnace style progress counters.
type Cooking struct {
	BurnTime      int16
	CookTime      int16
	CookTimeTotal int16
	RecipesUsed   map[string]int32 `json:",omitempty"`
}

func (ck *Cooking) fields() []Field {
	return []Field{
		Required("BurnTime", &ck.BurnTime, nbt.AsShort),
		Required("CookTime", &ck.CookTime, nbt.AsShort),
		Required("CookTimeTotal", &ck.CookTimeTotal, nbt.AsShort),
		OrZero("RecipesUsed", &ck.RecipesUsed, nbt.MapOf(nbt.AsInt)),
	}
}

// InventoryBlock is implemented by every container variant. The accessors
// return copies, so a record shared through a cache cannot be changed by
// one of its readers.
type InventoryBlock interface {
	BlockEntityType
	CustomName() (string, bool)
	Items() []Item
	Lock() (string, bool)
	LootTable() (string, bool)
	LootTableSeed() (int64, bool)
	Inventory() Inventory
}

// CookingBlock is implemented by the furnace family.
type CookingBlock interface {
	InventoryBlock
	BurnTime() int16
	CookTime() int16
	CookTimeTotal() int16
	RecipesUsed() map[string]int32
	Cooking() Cooking
}

type container struct {
	Inv Inventory `json:"inventory"`
}

func (c *container) CustomName() (string, bool)   { return deref(c.Inv.CustomName) }
func (c *container) Items() []Item                { return cloneItems(c.Inv.Items) }
func (c *container) Lock() (string, bool)         { return deref(c.Inv.Lock) }
func (c *container) LootTable() (string, bool)    { return deref(c.Inv.LootTable) }
func (c *container) LootTableSeed() (int64, bool) { return deref(c.Inv.LootTableSeed) }

func (c *container) Inventory() Inventory {
	return Inventory{
		CustomName:    clonePtr(c.Inv.CustomName),
		Items:         cloneItems(c.Inv.Items),
		Lock:          clonePtr(c.Inv.Lock),
		LootTable:     clonePtr(c.Inv.LootTable),
		LootTableSeed: clonePtr(c.Inv.LootTableSeed),
	}
}

func (c *container) fields() []Field { return c.Inv.fields() }

type cooker struct {
	container
	Cook Cooking `json:"cooking"`
}

func (c *cooker) BurnTime() int16               { return c.Cook.BurnTime }
func (c *cooker) CookTime() int16               { return c.Cook.CookTime }
func (c *cooker) CookTimeTotal() int16          { return c.Cook.CookTimeTotal }
func (c *cooker) RecipesUsed() map[string]int32 { return maps.Clone(c.Cook.RecipesUsed) }

func (c *cooker) Cooking() Cooking {
	ck := c.Cook
	ck.RecipesUsed = maps.Clone(ck.RecipesUsed)
	return ck
}

func (c *cooker) fields() []Field {
	return append(c.Inv.fields(), c.Cook.fields()...)
}

func deref[T any](p *T) (v T, ok bool) {
	if p == nil {
		return v, false
	}
	return *p, true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		it.Slot = clonePtr(it.Slot)
		it.Tag = cloneCompound(it.Tag)
		it.Components = cloneCompound(it.Components)
		out[i] = it
	}
	return out
}

func cloneCompound(c nbt.Compound) nbt.Compound {
	if c == nil {
		return nil
	}
	return nbt.Copy(c).(nbt.Compound)
}

type (
	Barrel       struct{ container }
	Chest        struct{ container }
	Dispenser    struct{ container }
	Dropper      struct{ container }
	ShulkerBox   struct{ container }
	TrappedChest struct{ container }

	BlastFurnace struct{ cooker }
	Furnace      struct{ cooker }
	Smoker       struct{ cooker }
)

// Hopper adds the item transfer cooldown to the container fields.
type Hopper struct {
	container
	TransferCooldown int32
}

func (h *Hopper) fields() []Field {
	return append(h.Inv.fields(), Default("TransferCooldown", &h.TransferCooldown, 0, nbt.AsInt))
}

func (*Barrel) blockEntityType()       {}
func (*Chest) blockEntityType()        {}
func (*Dispenser) blockEntityType()    {}
func (*Dropper) blockEntityType()      {}
func (*Hopper) blockEntityType()       {}
func (*ShulkerBox) blockEntityType()   {}
func (*TrappedChest) blockEntityType() {}
func (*BlastFurnace) blockEntityType() {}
func (*Furnace) blockEntityType()      {}
func (*Smoker) blockEntityType()       {}

// KindName returns the Go name of a variant, for example "Chest".
func KindName(k BlockEntityType) string {
	if k == nil {
		return ""
	}
	t := reflect.TypeOf(k)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
