package batch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

func TestToCollected_Fields(t *testing.T) {
	raw := domain.RawMessage{
		Topic:     "events",
		Partition: 2,
		Offset:    9007199254740993,
		Key:       []byte("user-1"),
		Value:     []byte("plain"),
		Headers:   map[string][]byte{"trace": []byte("abc")},
		Time:      time.UnixMilli(1700000000123),
	}

	m := ToCollected(raw, true)
	assert.Equal(t, "events", m.Topic)
	assert.Equal(t, 2, m.Partition)
	assert.Equal(t, "9007199254740993", m.Offset)
	require.NotNil(t, m.Key)
	assert.Equal(t, "user-1", *m.Key)
	assert.Equal(t, "plain", m.Value)
	assert.Equal(t, "1700000000123", m.Timestamp)
	assert.Equal(t, map[string]string{"trace": "abc"}, m.Headers)
}

// валидный JSON → структура, невалидный → исходная строка при любом parseJSON
func TestToCollected_JSONFallback(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		parseJSON bool
		want      any
	}{
		{"object", `{"id":1,"tags":["a"]}`, true, map[string]any{"id": json.Number("1"), "tags": []any{"a"}}},
		{"array", `[1,2]`, true, []any{json.Number("1"), json.Number("2")}},
		{"string literal", `"hi"`, true, "hi"},
		{"big int keeps precision", `12345678901234567890`, true, json.Number("12345678901234567890")},
		{"invalid parse on", `{"id":`, true, `{"id":`},
		{"invalid parse off", `{"id":`, false, `{"id":`},
		{"trailing data", `{"a":1} {"b":2}`, true, `{"a":1} {"b":2}`},
		{"valid parse off", `{"id":1}`, false, `{"id":1}`},
		{"empty", ``, true, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ToCollected(domain.RawMessage{Value: []byte(tt.value)}, tt.parseJSON)
			assert.Equal(t, tt.want, m.Value)
		})
	}
}

func TestToCollected_Absent(t *testing.T) {
	m := ToCollected(domain.RawMessage{}, true)
	assert.Nil(t, m.Key)
	assert.Equal(t, "", m.Value)
	assert.NotNil(t, m.Headers)
	assert.Empty(t, m.Headers)
	assert.Equal(t, "0", m.Timestamp)

	b, err := json.Marshal(domain.Item{Data: m})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"key":null`)
	assert.Contains(t, string(b), `"value":""`)
}
