package kkcard

import (
	"strings"
)

// Parameter is a typed view over a decoded Parameter block
//
// different titles spell some keys differently (e.g. "lastname" vs "lastName") - the accessors
// accept either spelling, preferring the lower-case/flat form
type Parameter struct {
	Value Value
}

func (p Parameter) lookup(keys ...[]string) (Value, bool) {
	for _, path := range keys {
		if v, ok := p.Value.Path(path...); ok && !v.IsNil() {
			return v, true
		}
	}
	return Value{}, false
}

func (p Parameter) str(keys ...[]string) (string, bool) {
	if v, ok := p.lookup(keys...); ok {
		return coerceString(v), true
	}
	return "", false
}

func (p Parameter) num(keys ...[]string) (int64, bool) {
	if v, ok := p.lookup(keys...); ok {
		return coerceInt(v), true
	}
	return 0, false
}

func (p Parameter) Lastname() (string, bool) {
	return p.str([]string{"lastname"}, []string{"lastName"})
}

func (p Parameter) Firstname() (string, bool) {
	return p.str([]string{"firstname"}, []string{"firstName"})
}

func (p Parameter) Nickname() (string, bool) {
	return p.str([]string{"nickname"}, []string{"nickName"})
}

// FullName returns the last name and first name joined by a space (trimmed)
func (p Parameter) FullName() string {
	last, _ := p.Lastname()
	first, _ := p.Firstname()
	return strings.TrimSpace(last + " " + first)
}

func (p Parameter) Sex() (int64, bool) {
	return p.num([]string{"sex"})
}

func (p Parameter) BirthMonth() (int64, bool) {
	return p.num([]string{"birthMonth"}, []string{"birthday", "month"})
}

func (p Parameter) BirthDay() (int64, bool) {
	return p.num([]string{"birthDay"}, []string{"birthday", "day"})
}

func (p Parameter) Personality() (int64, bool) {
	return p.num([]string{"personality"})
}

// CustomBlock is a typed view over a decoded Custom block
type CustomBlock struct {
	Value Value
}

func (c CustomBlock) Face() (Value, bool) {
	return c.Value.Get(customFace)
}

func (c CustomBlock) Body() (Value, bool) {
	return c.Value.Get(customBody)
}

func (c CustomBlock) Hair() (Value, bool) {
	return c.Value.Get(customHair)
}

// Coordinate is a single outfit record of a Coordinate block
type Coordinate struct {
	Clothes      Value
	Accessory    Value
	Makeup       Value
	EnableMakeup *bool
}

func coordinateOf(v Value) Coordinate {
	result := Coordinate{}
	result.Clothes, _ = v.Get(coordinateClothes)
	result.Accessory, _ = v.Get(coordinateAccessory)
	result.Makeup, _ = v.Get(coordinateMakeup)
	if flag, ok := v.Get(coordinateEnableMakeup); ok {
		if b, ok := flag.Bool(); ok {
			result.EnableMakeup = &b
		}
	}
	return result
}

// Parameter returns a typed view of the decoded Parameter block
func (c *Card) Parameter() (*Parameter, bool) {
	if v, ok := c.Blocks[BlockParameter]; ok && v.Kind() == KindMap {
		return &Parameter{Value: v}, true
	}
	return nil, false
}

// Custom returns a typed view of the decoded Custom block
func (c *Card) Custom() (*CustomBlock, bool) {
	if v, ok := c.Blocks[BlockCustom]; ok && v.Kind() == KindMap {
		return &CustomBlock{Value: v}, true
	}
	return nil, false
}

// Coordinates returns the decoded coordinate records
//
// a single record Coordinate block (version 0.0.1) is returned as a slice of one
func (c *Card) Coordinates() ([]Coordinate, bool) {
	v, ok := c.Blocks[BlockCoordinate]
	if !ok {
		return nil, false
	}
	switch v.Kind() {
	case KindMap:
		return []Coordinate{coordinateOf(v)}, true
	case KindList:
		items, _ := v.List()
		result := make([]Coordinate, len(items))
		for i, item := range items {
			result[i] = coordinateOf(item)
		}
		return result, true
	}
	return nil, false
}
