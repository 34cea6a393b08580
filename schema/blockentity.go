package schema

import (
	"github.com/goccy/go-json"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// BlockEntity is the extra state attached to a block, such as a chest's
// contents. Kind holds the fields specific to the block type.
type BlockEntity struct {
	ID         string
	KeepPacked bool
	X, Y, Z    int32
	Kind       BlockEntityType
}

// BlockEntityType is implemented by the closed set of block entity variants
// in this package. Unknown ids decode to *Other.
type BlockEntityType interface {
	blockEntityType()
}

// DecodeBlockEntity reads the id first and uses it to pick the variant. An
// id without a variant is not an error: the remaining keys are kept in an
// *Other.
func DecodeBlockEntity(c nbt.Compound) (be BlockEntity, err error) {
	tag, ok := c.Take("id")
	if !ok {
		return be, &MissingFieldError{Record: "BlockEntity", Field: "id"}
	}
	if be.ID, err = nbt.AsString(tag); err != nil {
		return be, &FieldError{Record: "BlockEntity", Field: "id", Err: err}
	}

	err = Decode("BlockEntity", c,
		Default("keepPacked", &be.KeepPacked, false, nbt.Bool),
		Required("x", &be.X, nbt.AsInt),
		Required("y", &be.Y, nbt.AsInt),
		Required("z", &be.Z, nbt.AsInt),
	)
	if err != nil {
		return
	}

	be.Kind, err = decodeKind(be.ID, c)
	return
}

// Inventory returns the container fields when the block carries them.
func (be BlockEntity) Inventory() (InventoryBlock, bool) {
	inv, ok := be.Kind.(InventoryBlock)
	return inv, ok
}

// MarshalJSON adds the variant name next to the variant fields.
func (be BlockEntity) MarshalJSON() ([]byte, error) {
	type plain BlockEntity
	return json.Marshal(struct {
		plain
		Variant string
	}{plain(be), KindName(be.Kind)})
}

func decodeKind(id string, c nbt.Compound) (BlockEntityType, error) {
	switch id {
	case "minecraft:barrel":
		return decodeVariant[Barrel]("Barrel", c)
	case "minecraft:chest":
		return decodeVariant[Chest]("Chest", c)
	case "minecraft:dispenser":
		return decodeVariant[Dispenser]("Dispenser", c)
	case "minecraft:dropper":
		return decodeVariant[Dropper]("Dropper", c)
	case "minecraft:hopper":
		return decodeVariant[Hopper]("Hopper", c)
	case "minecraft:shulker_box":
		return decodeVariant[ShulkerBox]("ShulkerBox", c)
	case "minecraft:trapped_chest":
		return decodeVariant[TrappedChest]("TrappedChest", c)
	case "minecraft:blast_furnace":
		return decodeVariant[BlastFurnace]("BlastFurnace", c)
	case "minecraft:furnace":
		return decodeVariant[Furnace]("Furnace", c)
	case "minecraft:smoker":
		return decodeVariant[Smoker]("Smoker", c)
	case "minecraft:banner":
		return decodeVariant[Banner]("Banner", c)
	case "minecraft:beacon":
		return decodeVariant[Beacon]("Beacon", c)
	case "minecraft:bed":
		return decodeVariant[Bed]("Bed", c)
	case "minecraft:beehive":
		return decodeVariant[Beehive]("Beehive", c)
	case "minecraft:bell":
		return decodeVariant[Bell]("Bell", c)
	case "minecraft:brewing_stand":
		return decodeVariant[BrewingStand]("BrewingStand", c)
	case "minecraft:campfire":
		return decodeVariant[Campfire]("Campfire", c)
	case "minecraft:chiseled_bookshelf":
		return decodeVariant[ChiseledBookshelf]("ChiseledBookshelf", c)
	case "minecraft:command_block":
		return decodeVariant[CommandBlock]("CommandBlock", c)
	case "minecraft:comparator":
		return decodeVariant[Comparator]("Comparator", c)
	case "minecraft:conduit":
		return decodeVariant[Conduit]("Conduit", c)
	case "minecraft:daylight_detector":
		return decodeVariant[DaylightDetector]("DaylightDetector", c)
	case "minecraft:decorated_pot":
		return decodeVariant[DecoratedPot]("DecoratedPot", c)
	case "minecraft:enchanting_table":
		return decodeVariant[EnchantingTable]("EnchantingTable", c)
	case "minecraft:end_gateway":
		return decodeVariant[EndGateway]("EndGateway", c)
	case "minecraft:end_portal":
		return decodeVariant[EndPortal]("EndPortal", c)
	case "minecraft:ender_chest":
		return decodeVariant[EnderChest]("EnderChest", c)
	case "minecraft:jigsaw":
		return decodeVariant[Jigsaw]("Jigsaw", c)
	case "minecraft:jukebox":
		return decodeVariant[Jukebox]("Jukebox", c)
	case "minecraft:lectern":
		return decodeVariant[Lectern]("Lectern", c)
	case "minecraft:mob_spawner":
		return decodeVariant[MobSpawner]("MobSpawner", c)
	case "minecraft:piston":
		return decodeVariant[Piston]("Piston", c)
	case "minecraft:sculk_sensor", "minecraft:calibrated_sculk_sensor":
		return decodeVariant[SculkSensor]("SculkSensor", c)
	case "minecraft:sign", "minecraft:hanging_sign":
		return decodeVariant[Sign]("Sign", c)
	case "minecraft:skull":
		return decodeVariant[Skull]("Skull", c)
	case "minecraft:structure_block":
		return decodeVariant[StructureBlock]("StructureBlock", c)
	default:
		return &Other{Data: c}, nil
	}
}

type variant[T any] interface {
	*T
	BlockEntityType
	fields() []Field
}

func decodeVariant[T any, P variant[T]](record string, c nbt.Compound) (BlockEntityType, error) {
	v := P(new(T))
	if err := Decode(record, c, v.fields()...); err != nil {
		return nil, err
	}
	return v, nil
}

// Other keeps the raw remaining compound of a block entity with an id this
// package does not model.
type Other struct {
	Data nbt.Compound
}

func (*Other) blockEntityType() {}
