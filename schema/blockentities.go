package schema

import (
	"github.com/google/uuid"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

type BannerPattern struct {
	Color   int32
	Pattern string
}

func decodeBannerPattern(c nbt.Compound) (p BannerPattern, err error) {
	err = Decode("BannerPattern", c,
		Required("Color", &p.Color, nbt.AsInt),
		Required("Pattern", &p.Pattern, nbt.AsString),
	)
	return
}

type Banner struct {
	CustomName *string `json:",omitempty"`
	Patterns   []BannerPattern
}

func (b *Banner) fields() []Field {
	return []Field{
		Optional("CustomName", &b.CustomName, nbt.AsString),
		OrZero("Patterns", &b.Patterns, nbt.ListOf(FromCompound(decodeBannerPattern))),
	}
}

type Beacon struct {
	CustomName      *string `json:",omitempty"`
	Lock            *string `json:",omitempty"`
	Levels          int32
	Primary         *int32  `json:",omitempty"`
	Secondary       *int32  `json:",omitempty"`
	PrimaryEffect   *string `json:",omitempty"`
	SecondaryEffect *string `json:",omitempty"`
}

func (b *Beacon) fields() []Field {
	return []Field{
		Optional("CustomName", &b.CustomName, nbt.AsString),
		Optional("Lock", &b.Lock, nbt.AsString),
		OrZero("Levels", &b.Levels, nbt.AsInt),
		Optional("Primary", &b.Primary, nbt.AsInt),
		Optional("Secondary", &b.Secondary, nbt.AsInt),
		Optional("primary_effect", &b.PrimaryEffect, nbt.AsString),
		Optional("secondary_effect", &b.SecondaryEffect, nbt.AsString),
	}
}

type Bee struct {
	EntityData         Entity
	MinOccupationTicks int32
	TicksInHive        int32
}

func decodeBee(c nbt.Compound) (b Bee, err error) {
	err = Decode("Bee", c,
		Required("EntityData", &b.EntityData, FromCompound(DecodeEntity)),
		Required("MinOccupationTicks", &b.MinOccupationTicks, nbt.AsInt),
		Required("TicksInHive", &b.TicksInHive, nbt.AsInt),
	)
	return
}

type Beehive struct {
	Bees      []Bee
	FlowerPos *BlockPos `json:",omitempty"`
}

func (b *Beehive) fields() []Field {
	return []Field{
		OrZero("Bees", &b.Bees, nbt.ListOf(FromCompound(decodeBee))),
		Optional("FlowerPos", &b.FlowerPos, blockPosTag),
	}
}

type BrewingStand struct {
	CustomName *string `json:",omitempty"`
	Items      []Item
	Lock       *string `json:",omitempty"`
	BrewTime   int16
	Fuel       int8
}

func (b *BrewingStand) fields() []Field {
	return []Field{
		Optional("CustomName", &b.CustomName, nbt.AsString),
		OrZero("Items", &b.Items, itemList),
		Optional("Lock", &b.Lock, nbt.AsString),
		Required("BrewTime", &b.BrewTime, nbt.AsShort),
		Required("Fuel", &b.Fuel, nbt.AsByte),
	}
}

type Campfire struct {
	Items             []Item
	CookingTimes      []int32
	CookingTotalTimes []int32
}

func (b *Campfire) fields() []Field {
	return []Field{
		OrZero("Items", &b.Items, itemList),
		OrZero("CookingTimes", &b.CookingTimes, nbt.AsIntArray),
		OrZero("CookingTotalTimes", &b.CookingTotalTimes, nbt.AsIntArray),
	}
}

type ChiseledBookshelf struct {
	Items              []Item
	LastInteractedSlot int32
}

func (b *ChiseledBookshelf) fields() []Field {
	return []Field{
		OrZero("Items", &b.Items, itemList),
		Default("last_interacted_slot", &b.LastInteractedSlot, -1, nbt.AsInt),
	}
}

type CommandBlock struct {
	CustomName          *string `json:",omitempty"`
	Command             string
	SuccessCount        int32
	LastOutput          string
	TrackOutput         bool
	Powered             bool
	Auto                bool
	ConditionMet        bool
	UpdateLastExecution bool
	LastExecution       *int64 `json:",omitempty"`
}

func (b *CommandBlock) fields() []Field {
	return []Field{
		Optional("CustomName", &b.CustomName, nbt.AsString),
		Required("Command", &b.Command, nbt.AsString),
		Required("SuccessCount", &b.SuccessCount, nbt.AsInt),
		OrZero("LastOutput", &b.LastOutput, nbt.AsString),
		Default("TrackOutput", &b.TrackOutput, true, nbt.Bool),
		OrZero("powered", &b.Powered, nbt.Bool),
		OrZero("auto", &b.Auto, nbt.Bool),
		OrZero("conditionMet", &b.ConditionMet, nbt.Bool),
		Default("UpdateLastExecution", &b.UpdateLastExecution, true, nbt.Bool),
		Optional("LastExecution", &b.LastExecution, nbt.AsLong),
	}
}

type Comparator struct {
	OutputSignal int32
}

func (b *Comparator) fields() []Field {
	return []Field{Required("OutputSignal", &b.OutputSignal, nbt.AsInt)}
}

type Conduit struct {
	Target *uuid.UUID `json:",omitempty"`
}

func (b *Conduit) fields() []Field {
	return []Field{Optional("Target", &b.Target, UUIDTag)}
}

type DecoratedPot struct {
	Sherds []string
	Item   *Item `json:",omitempty"`
}

func (b *DecoratedPot) fields() []Field {
	return []Field{
		OrZero("sherds", &b.Sherds, nbt.ListOf(nbt.AsString)),
		Optional("item", &b.Item, itemTag),
	}
}

type EnchantingTable struct {
	CustomName *string `json:",omitempty"`
}

func (b *EnchantingTable) fields() []Field {
	return []Field{Optional("CustomName", &b.CustomName, nbt.AsString)}
}

type EndGateway struct {
	Age           int64
	ExactTeleport bool
	ExitPortal    *BlockPos `json:",omitempty"`
}

func (b *EndGateway) fields() []Field {
	return []Field{
		Required("Age", &b.Age, nbt.AsLong),
		OrZero("ExactTeleport", &b.ExactTeleport, nbt.Bool),
		Optional("ExitPortal", &b.ExitPortal, blockPosTag),
	}
}

type Jigsaw struct {
	FinalState string
	Joint      string
	Name       string
	Pool       string
	Target     string
}

func (b *Jigsaw) fields() []Field {
	return []Field{
		Required("final_state", &b.FinalState, nbt.AsString),
		Required("joint", &b.Joint, nbt.AsString),
		Required("name", &b.Name, nbt.AsString),
		Required("pool", &b.Pool, nbt.AsString),
		Required("target", &b.Target, nbt.AsString),
	}
}

type Jukebox struct {
	RecordItem            *Item  `json:",omitempty"`
	TicksSinceSongStarted *int64 `json:",omitempty"`
}

func (b *Jukebox) fields() []Field {
	return []Field{
		Optional("RecordItem", &b.RecordItem, itemTag),
		Optional("ticks_since_song_started", &b.TicksSinceSongStarted, nbt.AsLong),
	}
}

type Lectern struct {
	Book *Item  `json:",omitempty"`
	Page *int32 `json:",omitempty"`
}

func (b *Lectern) fields() []Field {
	return []Field{
		Optional("Book", &b.Book, itemTag),
		Optional("Page", &b.Page, nbt.AsInt),
	}
}

type MobSpawner struct {
	Delay               int16
	MaxNearbyEntities   int16
	MaxSpawnDelay       int16
	MinSpawnDelay       int16
	RequiredPlayerRange int16
	SpawnCount          int16
	SpawnRange          int16
	SpawnData           nbt.Compound   `json:",omitempty"`
	SpawnPotentials     []nbt.Compound `json:",omitempty"`
}

func (b *MobSpawner) fields() []Field {
	return []Field{
		Required("Delay", &b.Delay, nbt.AsShort),
		Required("MaxNearbyEntities", &b.MaxNearbyEntities, nbt.AsShort),
		Required("MaxSpawnDelay", &b.MaxSpawnDelay, nbt.AsShort),
		Required("MinSpawnDelay", &b.MinSpawnDelay, nbt.AsShort),
		Required("RequiredPlayerRange", &b.RequiredPlayerRange, nbt.AsShort),
		Required("SpawnCount", &b.SpawnCount, nbt.AsShort),
		Required("SpawnRange", &b.SpawnRange, nbt.AsShort),
		OrZero("SpawnData", &b.SpawnData, nbt.AsCompound),
		OrZero("SpawnPotentials", &b.SpawnPotentials, nbt.ListOf(nbt.AsCompound)),
	}
}

type Piston struct {
	BlockState BlockState
	Extending  bool
	Facing     int32
	Progress   float32
	Source     bool
}

func (b *Piston) fields() []Field {
	return []Field{
		Required("blockState", &b.BlockState, FromCompound(decodeBlockState)),
		Required("extending", &b.Extending, nbt.Bool),
		Required("facing", &b.Facing, nbt.AsInt),
		Required("progress", &b.Progress, nbt.AsFloat),
		Required("source", &b.Source, nbt.Bool),
	}
}

type SculkSensor struct {
	LastVibrationFrequency *int32 `json:",omitempty"`
}

func (b *SculkSensor) fields() []Field {
	return []Field{Optional("last_vibration_frequency", &b.LastVibrationFrequency, nbt.AsInt)}
}

// SignText is one side of a sign.
type SignText struct {
	Color          string
	HasGlowingText bool
	Messages       []string
}

func decodeSignText(c nbt.Compound) (s SignText, err error) {
	err = Decode("SignText", c,
		Default("color", &s.Color, "black", nbt.AsString),
		OrZero("has_glowing_text", &s.HasGlowingText, nbt.Bool),
		OrZero("messages", &s.Messages, nbt.ListOf(nbt.AsString)),
	)
	return
}

// Sign covers both the two sided layout and the older Text1-Text4 layout.
type Sign struct {
	IsWaxed     bool
	FrontText   *SignText `json:",omitempty"`
	BackText    *SignText `json:",omitempty"`
	Color       *string   `json:",omitempty"`
	GlowingText *bool     `json:",omitempty"`
	Text        [4]*string
}

func (b *Sign) fields() []Field {
	signText := FromCompound(decodeSignText)
	return []Field{
		OrZero("is_waxed", &b.IsWaxed, nbt.Bool),
		Optional("front_text", &b.FrontText, signText),
		Optional("back_text", &b.BackText, signText),
		Optional("Color", &b.Color, nbt.AsString),
		Optional("GlowingText", &b.GlowingText, nbt.Bool),
		Optional("Text1", &b.Text[0], nbt.AsString),
		Optional("Text2", &b.Text[1], nbt.AsString),
		Optional("Text3", &b.Text[2], nbt.AsString),
		Optional("Text4", &b.Text[3], nbt.AsString),
	}
}

type SkullOwner struct {
	ID   *uuid.UUID `json:",omitempty"`
	Name *string    `json:",omitempty"`
}

func decodeSkullOwner(c nbt.Compound) (s SkullOwner, err error) {
	err = Decode("SkullOwner", c,
		Optional("Id", &s.ID, UUIDTag),
		Optional("Name", &s.Name, nbt.AsString),
	)
	return
}

type Skull struct {
	ExtraType      *string     `json:",omitempty"`
	SkullOwner     *SkullOwner `json:",omitempty"`
	NoteBlockSound *string     `json:",omitempty"`
}

func (b *Skull) fields() []Field {
	return []Field{
		Optional("ExtraType", &b.ExtraType, nbt.AsString),
		Optional("SkullOwner", &b.SkullOwner, FromCompound(decodeSkullOwner)),
		Optional("note_block_sound", &b.NoteBlockSound, nbt.AsString),
	}
}

type StructureBlock struct {
	Author          string
	IgnoreEntities  bool
	Integrity       float32
	Metadata        string
	Mirror          string
	Mode            string
	Name            string
	PosX            int32
	PosY            int32
	PosZ            int32
	Powered         bool
	Rotation        string
	Seed            int64
	ShowAir         bool
	ShowBoundingBox bool
	SizeX           int32
	SizeY           int32
	SizeZ           int32
}

func (b *StructureBlock) fields() []Field {
	return []Field{
		OrZero("author", &b.Author, nbt.AsString),
		Default("ignoreEntities", &b.IgnoreEntities, true, nbt.Bool),
		Default("integrity", &b.Integrity, 1, nbt.AsFloat),
		OrZero("metadata", &b.Metadata, nbt.AsString),
		Required("mirror", &b.Mirror, nbt.AsString),
		Required("mode", &b.Mode, nbt.AsString),
		Required("name", &b.Name, nbt.AsString),
		Required("posX", &b.PosX, nbt.AsInt),
		Required("posY", &b.PosY, nbt.AsInt),
		Required("posZ", &b.PosZ, nbt.AsInt),
		OrZero("powered", &b.Powered, nbt.Bool),
		Required("rotation", &b.Rotation, nbt.AsString),
		OrZero("seed", &b.Seed, nbt.AsLong),
		OrZero("showair", &b.ShowAir, nbt.Bool),
		Default("showboundingbox", &b.ShowBoundingBox, true, nbt.Bool),
		Required("sizeX", &b.SizeX, nbt.AsInt),
		Required("sizeY", &b.SizeY, nbt.AsInt),
		Required("sizeZ", &b.SizeZ, nbt.AsInt),
	}
}

// Block entities without fields of their own.
type (
	Bed              struct{}
	Bell             struct{}
	DaylightDetector struct{}
	EndPortal        struct{}
	EnderChest       struct{}
)

func (*Bed) fields() []Field              { return nil }
func (*Bell) fields() []Field             { return nil }
func (*DaylightDetector) fields() []Field { return nil }
func (*EndPortal) fields() []Field        { return nil }
func (*EnderChest) fields() []Field       { return nil }

func (*Banner) blockEntityType()            {}
func (*Beacon) blockEntityType()            {}
func (*Bed) blockEntityType()               {}
func (*Beehive) blockEntityType()           {}
func (*Bell) blockEntityType()              {}
func (*BrewingStand) blockEntityType()      {}
func (*Campfire) blockEntityType()          {}
func (*ChiseledBookshelf) blockEntityType() {}
func (*CommandBlock) blockEntityType()      {}
func (*Comparator) blockEntityType()        {}
func (*Conduit) blockEntityType()           {}
func (*DaylightDetector) blockEntityType()  {}
func (*DecoratedPot) blockEntityType()      {}
func (*EnchantingTable) blockEntityType()   {}
func (*EndGateway) blockEntityType()        {}
func (*EndPortal) blockEntityType()         {}
func (*EnderChest) blockEntityType()        {}
func (*Jigsaw) blockEntityType()            {}
func (*Jukebox) blockEntityType()           {}
func (*Lectern) blockEntityType()           {}
func (*MobSpawner) blockEntityType()        {}
func (*Piston) blockEntityType()            {}
func (*SculkSensor) blockEntityType()       {}
func (*Sign) blockEntityType()              {}
func (*Skull) blockEntityType()             {}
func (*StructureBlock) blockEntityType()    {}
