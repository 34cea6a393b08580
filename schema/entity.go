package schema

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// Entity holds the fields shared by every entity. Keys specific to the
// entity type are left in Data.
type Entity struct {
	ID                string
	Pos               [3]float64
	Motion            *[3]float64 `json:",omitempty"`
	Rotation          *[2]float32 `json:",omitempty"`
	UUID              *uuid.UUID  `json:",omitempty"`
	CustomName        *string     `json:",omitempty"`
	CustomNameVisible bool
	Tags              []string `json:",omitempty"`
	Air               int16
	FallDistance      float32
	Fire              int16
	PortalCooldown    int32
	Invulnerable      bool
	OnGround          bool
	NoGravity         bool
	Silent            bool
	Glowing           bool
	Passengers        []Entity     `json:",omitempty"`
	Data              nbt.Compound `json:",omitempty"`
}

// DecodeEntity consumes the shared entity keys and keeps the rest of c.
func DecodeEntity(c nbt.Compound) (e Entity, err error) {
	err = Decode("Entity", c,
		Required("id", &e.ID, nbt.AsString),
		Required("Pos", &e.Pos, vec3),
		Optional("Motion", &e.Motion, vec3),
		Optional("Rotation", &e.Rotation, rotation),
		Optional("UUID", &e.UUID, UUIDTag),
		Optional("CustomName", &e.CustomName, nbt.AsString),
		OrZero("CustomNameVisible", &e.CustomNameVisible, nbt.Bool),
		OrZero("Tags", &e.Tags, nbt.ListOf(nbt.AsString)),
		Default("Air", &e.Air, 300, nbt.AsShort),
		OrZero("FallDistance", &e.FallDistance, nbt.AsFloat),
		Default("Fire", &e.Fire, -20, nbt.AsShort),
		OrZero("PortalCooldown", &e.PortalCooldown, nbt.AsInt),
		OrZero("Invulnerable", &e.Invulnerable, nbt.Bool),
		OrZero("OnGround", &e.OnGround, nbt.Bool),
		OrZero("NoGravity", &e.NoGravity, nbt.Bool),
		OrZero("Silent", &e.Silent, nbt.Bool),
		OrZero("Glowing", &e.Glowing, nbt.Bool),
		OrZero("Passengers", &e.Passengers, nbt.ListOf(FromCompound(DecodeEntity))),
	)
	if err != nil {
		return
	}
	if len(c) > 0 {
		e.Data = c
	}
	return
}

// EntityChunk is a chunk payload of the entities region files.
type EntityChunk struct {
	DataVersion int32
	Position    [2]int32
	Entities    []Entity
}

// DecodeEntityChunk maps the root compound of an entities region payload.
func DecodeEntityChunk(c nbt.Compound) (*EntityChunk, error) {
	var chunk EntityChunk
	err := Decode("EntityChunk", c,
		Required("DataVersion", &chunk.DataVersion, nbt.AsInt),
		Required("Position", &chunk.Position, chunkPosition),
		Required("Entities", &chunk.Entities, nbt.ListOf(FromCompound(DecodeEntity))),
	)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// UUIDTag converts the four int array representation of a UUID.
func UUIDTag(t nbt.Tag) (uuid.UUID, error) {
	arr, err := nbt.AsIntArray(t)
	if err != nil {
		return uuid.Nil, err
	}
	if len(arr) != 4 {
		return uuid.Nil, fmt.Errorf("%w: UUID needs 4 ints, got %d", nbt.ErrInvalidValue, len(arr))
	}
	var id uuid.UUID
	for i, v := range arr {
		binary.BigEndian.PutUint32(id[i*4:], uint32(v))
	}
	return id, nil
}

func vec3(t nbt.Tag) (v [3]float64, err error) {
	values, err := nbt.ListOf(nbt.AsDouble)(t)
	if err != nil {
		return v, err
	}
	if len(values) != 3 {
		return v, fmt.Errorf("%w: expected 3 doubles, got %d", nbt.ErrInvalidValue, len(values))
	}
	copy(v[:], values)
	return v, nil
}

func rotation(t nbt.Tag) (v [2]float32, err error) {
	values, err := nbt.ListOf(nbt.AsFloat)(t)
	if err != nil {
		return v, err
	}
	if len(values) != 2 {
		return v, fmt.Errorf("%w: expected 2 floats, got %d", nbt.ErrInvalidValue, len(values))
	}
	copy(v[:], values)
	return v, nil
}

func chunkPosition(t nbt.Tag) (v [2]int32, err error) {
	values, err := nbt.AsIntArray(t)
	if err != nil {
		return v, err
	}
	if len(values) != 2 {
		return v, fmt.Errorf("%w: expected 2 ints, got %d", nbt.ErrInvalidValue, len(values))
	}
	copy(v[:], values)
	return v, nil
}
