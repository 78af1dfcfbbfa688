package kkcard

const (
	coordinateClothes      = "clothes"
	coordinateAccessory    = "accessory"
	coordinateEnableMakeup = "enableMakeup"
	coordinateMakeup       = "makeup"
)

// CoordinateVersionSingle is the Coordinate block version (Emotion Creators) holding a single
// coordinate record rather than a list
const CoordinateVersionSingle = "0.0.1"

func coordinateDecoder(raw []byte, info BlockInfo) (Value, error) {
	if info.Version == CoordinateVersionSingle {
		f := newFramedReader(raw)
		if err := f.values(coordinateClothes, coordinateAccessory); err != nil {
			return Value{}, err
		}
		return f.result(), nil
	}
	// other versions (Koikatu) - a msgpack list of binary coordinate records...
	outer, err := DecodeValue(raw)
	if err != nil {
		return Value{}, err
	}
	items, ok := outer.List()
	if !ok {
		return ListValue(), nil
	}
	coords := make([]Value, 0, len(items))
	for _, item := range items {
		data, _ := item.Bytes()
		f := newFramedReader(data)
		if err = f.values(coordinateClothes, coordinateAccessory); err != nil {
			return Value{}, err
		}
		f.flag(coordinateEnableMakeup)
		if err = f.value(coordinateMakeup); err != nil {
			return Value{}, err
		}
		coords = append(coords, f.result())
	}
	return ListValue(coords...), nil
}
