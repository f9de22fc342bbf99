package recordtype

import (
	"encoding/json"
	"sort"
)

// MarshalList serialises a catalog sorted by id.
func MarshalList(types []Type) ([]byte, error) {
	list := append([]Type(nil), types...)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return json.MarshalIndent(list, "", "  ")
}

// UnmarshalList deserialises a catalog. Legacy files holding a map of id to
// field names are upgraded.
func UnmarshalList(data []byte) ([]Type, error) {
	if len(data) == 0 {
		return []Type{}, nil
	}
	var types []Type
	if err := json.Unmarshal(data, &types); err == nil {
		for i := range types {
			types[i].ID = NormalizeID(types[i].ID)
		}
		return types, nil
	}
	var legacy map[string][]string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	types = make([]Type, 0, len(legacy))
	for id, fields := range legacy {
		types = append(types, Type{ID: NormalizeID(id), Fields: fields})
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}
