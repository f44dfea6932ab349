package enmap

import (
	"encoding/json"
	"fmt"
)

// encodeData serializes an entry value to the JSON text stored in the
// mirror's data column.
func encodeData[V any](v V) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode data: %w", err)
	}
	return string(b), nil
}

// decodeData parses mirrored JSON text back into the store's element type.
func decodeData[V any](data string) (V, error) {
	var v V
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return v, fmt.Errorf("decode data: %w", err)
	}
	return v, nil
}
