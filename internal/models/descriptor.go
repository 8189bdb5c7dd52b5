package models

// Descriptor is the raw field mapping declared by a descriptor file
type Descriptor map[string]interface{}

// Has reports whether key is declared
func (d Descriptor) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value of key if it is a string
func (d Descriptor) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the string value of key, or def if absent
func (d Descriptor) StringOr(key, def string) string {
	if s, ok := d.String(key); ok {
		return s
	}
	return def
}
