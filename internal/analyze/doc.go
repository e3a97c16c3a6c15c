// Package analyze resolves the mappable fields of runtime types.
//
// It walks a struct type (and the structs it embeds) with reflect and resolves,
// for every field, the accessor used to read it and the accessor used to write it.
//
// Key types:
//   - FieldInfo: one mappable field with its reader and writer
//   - Accessor: a field or Get/Is/Set method used to read or write a field
//   - MapKey: the map-side counterpart of an Accessor
package analyze
