package schema

import (
	"fmt"
	"strings"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// Status is the world generation stage a chunk has reached.
type Status uint8

const (
	StatusEmpty Status = iota
	StatusStructureStarts
	StatusStructureReferences
	StatusBiomes
	StatusNoise
	StatusSurface
	StatusCarvers
	StatusLiquidCarvers
	StatusFeatures
	StatusLight
	StatusSpawn
	StatusHeightmaps
	StatusFull
)

var statusNames = [...]string{
	StatusEmpty:               "empty",
	StatusStructureStarts:     "structure_starts",
	StatusStructureReferences: "structure_references",
	StatusBiomes:              "biomes",
	StatusNoise:               "noise",
	StatusSurface:             "surface",
	StatusCarvers:             "carvers",
	StatusLiquidCarvers:       "liquid_carvers",
	StatusFeatures:            "features",
	StatusLight:               "light",
	StatusSpawn:               "spawn",
	StatusHeightmaps:          "heightmaps",
	StatusFull:                "full",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStatus accepts the stage name with or without the minecraft: prefix.
func ParseStatus(name string) (Status, error) {
	name = strings.TrimPrefix(name, "minecraft:")
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown chunk status %q", nbt.ErrInvalidValue, name)
}

func statusTag(t nbt.Tag) (Status, error) {
	name, err := nbt.AsString(t)
	if err != nil {
		return 0, err
	}
	return ParseStatus(name)
}

// ChunkData is one decoded chunk column.
type ChunkData struct {
	DataVersion   int32
	X, Y, Z       int32
	Status        Status
	LastUpdate    int64
	InhabitedTime *int64 `json:",omitempty"`
	IsLightOn     *bool  `json:",omitempty"`
	Sections      []Section
	BlockEntities []BlockEntity      `json:",omitempty"`
	Entities      []Entity           `json:",omitempty"`
	Heightmaps    map[string][]int64 `json:",omitempty"`
}

// DecodeChunk maps the root compound of a region chunk payload. It consumes
// the keys it reads from c.
func DecodeChunk(c nbt.Compound) (*ChunkData, error) {
	var chunk ChunkData
	err := Decode("ChunkData", c,
		Required("DataVersion", &chunk.DataVersion, nbt.AsInt),
		Required("xPos", &chunk.X, nbt.AsInt),
		Required("yPos", &chunk.Y, nbt.AsInt),
		Required("zPos", &chunk.Z, nbt.AsInt),
		Required("Status", &chunk.Status, statusTag),
		Required("LastUpdate", &chunk.LastUpdate, nbt.AsLong),
		Required("sections", &chunk.Sections, nbt.ListOf(FromCompound(decodeSection))),
		Optional("InhabitedTime", &chunk.InhabitedTime, nbt.AsLong),
		Optional("isLightOn", &chunk.IsLightOn, nbt.Bool),
		OrZero("block_entities", &chunk.BlockEntities, nbt.ListOf(FromCompound(DecodeBlockEntity))),
		OrZero("entities", &chunk.Entities, nbt.ListOf(FromCompound(DecodeEntity))),
		OrZero("Heightmaps", &chunk.Heightmaps, nbt.MapOf(nbt.AsLongArray)),
	)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// Section is a 16x16x16 slice of a chunk.
type Section struct {
	Y           int8
	BlockStates *BlockStates `json:",omitempty"`
	Biomes      *Biomes      `json:",omitempty"`
	BlockLight  []byte       `json:",omitempty"`
	SkyLight    []byte       `json:",omitempty"`
}

func decodeSection(c nbt.Compound) (s Section, err error) {
	err = Decode("Section", c,
		Required("Y", &s.Y, nbt.AsByte),
		Optional("block_states", &s.BlockStates, FromCompound(decodeBlockStates)),
		Optional("biomes", &s.Biomes, FromCompound(decodeBiomes)),
		OrZero("BlockLight", &s.BlockLight, lightTag),
		OrZero("SkyLight", &s.SkyLight, lightTag),
	)
	return
}

// lightTag reads a nibble array of 4096 light levels.
func lightTag(t nbt.Tag) ([]byte, error) {
	b, err := nbt.AsBytes(t)
	if err == nil && len(b) != 2048 {
		err = fmt.Errorf("%w: light array has %d bytes, want 2048", nbt.ErrInvalidValue, len(b))
	}
	return b, err
}

// BlockState is a block name with its state properties.
type BlockState struct {
	Name       string
	Properties map[string]string `json:",omitempty"`
}

func decodeBlockState(c nbt.Compound) (b BlockState, err error) {
	err = Decode("BlockState", c,
		Required("Name", &b.Name, nbt.AsString),
		OrZero("Properties", &b.Properties, nbt.MapOf(nbt.AsString)),
	)
	return
}

// BlockStates is the paletted block storage of a section.
type BlockStates struct {
	Palette []BlockState
	Data    []int64 `json:",omitempty"`
}

func decodeBlockStates(c nbt.Compound) (b BlockStates, err error) {
	err = Decode("BlockStates", c,
		Required("palette", &b.Palette, nbt.ListOf(FromCompound(decodeBlockState))),
		OrZero("data", &b.Data, nbt.AsLongArray),
	)
	return
}

// Biomes is the paletted biome storage of a section.
type Biomes struct {
	Palette []string
	Data    []int64 `json:",omitempty"`
}

func decodeBiomes(c nbt.Compound) (b Biomes, err error) {
	err = Decode("Biomes", c,
		Required("palette", &b.Palette, nbt.ListOf(nbt.AsString)),
		OrZero("data", &b.Data, nbt.AsLongArray),
	)
	return
}
