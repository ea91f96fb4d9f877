package querycache

import (
	"encoding/json"
	"fmt"
)

// Key состоит из имени ресурса и, при необходимости, параметров.
// Ключи сравниваются по значению через каноническое JSON-представление.
type Key []any

func K(parts ...any) Key { return Key(parts) }

func (k Key) String() string {
	parts := make([]json.RawMessage, len(k))
	for i, p := range k {
		parts[i] = canonical(p)
	}
	b, _ := json.Marshal(parts)
	return string(b)
}

// HasPrefix: ["forecast","P1",8] имеет префикс ["forecast"].
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if string(canonical(k[i])) != string(canonical(p[i])) {
			return false
		}
	}
	return true
}

func canonical(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprintf("%#v", v))
	}
	return b
}
