package record

import "sort"

// VersionField is the schema-internal ordering field; it is never surfaced.
const VersionField = "_version_"

// Record is a stored catalog entry read back from the index.
type Record struct {
	id     string
	fields map[string][]string
}

// New creates a Record. Values are kept in stored order.
func New(id string, fields map[string][]string) Record {
	return Record{id: id, fields: fields}
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// Fields returns all stored values by field name.
func (r Record) Fields() map[string][]string { return r.fields }

// Values returns the stored values of field.
func (r Record) Values(field string) []string { return r.fields[field] }

// Get returns the first stored value of field.
func (r Record) Get(field string) (string, bool) {
	vs := r.fields[field]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// FieldNames returns the stored field names in ascending order.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r.fields))
	for k := range r.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Flatten maps every stored field to its first value, skipping VersionField
// and any name in exclude. The record id is reported under idField unless
// the record already stores that field or it is excluded.
func (r Record) Flatten(idField string, exclude map[string]struct{}) map[string]string {
	out := make(map[string]string, len(r.fields)+1)
	for name, vs := range r.fields {
		if name == VersionField || len(vs) == 0 {
			continue
		}
		if _, skip := exclude[name]; skip {
			continue
		}
		out[name] = vs[0]
	}
	if idField != "" && r.id != "" {
		if _, skip := exclude[idField]; !skip {
			if _, ok := out[idField]; !ok {
				out[idField] = r.id
			}
		}
	}
	return out
}
