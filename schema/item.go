package schema

import (
	"fmt"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// Item is an item stack stored in a container or held by an entity.
type Item struct {
	ID         string
	Count      int32
	Slot       *int8        `json:",omitempty"`
	Tag        nbt.Compound `json:",omitempty"`
	Components nbt.Compound `json:",omitempty"`
}

// DecodeItem reads both the byte Count of older saves and the int count
// written since the item component rework.
func DecodeItem(c nbt.Compound) (it Item, err error) {
	var legacyCount *int8
	var count *int32
	err = Decode("Item", c,
		Required("id", &it.ID, nbt.AsString),
		Optional("Count", &legacyCount, nbt.AsByte),
		Optional("count", &count, nbt.AsInt),
		Optional("Slot", &it.Slot, nbt.AsByte),
		OrZero("tag", &it.Tag, nbt.AsCompound),
		OrZero("components", &it.Components, nbt.AsCompound),
	)
	if err != nil {
		return
	}
	switch {
	case count != nil:
		it.Count = *count
	case legacyCount != nil:
		it.Count = int32(*legacyCount)
	default:
		err = &MissingFieldError{Record: "Item", Field: "Count"}
	}
	return
}

var (
	itemTag  = FromCompound(DecodeItem)
	itemList = nbt.ListOf(itemTag)
)

// BlockPos is an absolute block position.
type BlockPos struct {
	X, Y, Z int32
}

func decodeBlockPos(c nbt.Compound) (p BlockPos, err error) {
	err = Decode("BlockPos", c,
		Required("X", &p.X, nbt.AsInt),
		Required("Y", &p.Y, nbt.AsInt),
		Required("Z", &p.Z, nbt.AsInt),
	)
	return
}

// blockPosTag accepts the {X,Y,Z} compound and the three int array form.
func blockPosTag(t nbt.Tag) (BlockPos, error) {
	if arr, ok := t.(nbt.IntArray); ok {
		if len(arr) != 3 {
			return BlockPos{}, fmt.Errorf("%w: block position needs 3 ints, got %d", nbt.ErrInvalidValue, len(arr))
		}
		return BlockPos{X: arr[0], Y: arr[1], Z: arr[2]}, nil
	}
	return FromCompound(decodeBlockPos)(t)
}
