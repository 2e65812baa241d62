package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"strconv"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// ToCollected — преобразует сообщение брокера в запись результата.
// Невалидный JSON при parseJSON=true — не ошибка: остаётся исходная строка.
func ToCollected(raw domain.RawMessage, parseJSON bool) domain.CollectedMessage {
	value := string(raw.Value)

	msg := domain.CollectedMessage{
		Topic:     raw.Topic,
		Partition: raw.Partition,
		Offset:    strconv.FormatInt(raw.Offset, 10),
		Value:     value,
		Timestamp: timestamp(raw),
		Headers:   headers(raw.Headers),
	}

	if raw.Key != nil {
		key := string(raw.Key)
		msg.Key = &key
	}

	if parseJSON && value != "" {
		if parsed, ok := decodeJSON(raw.Value); ok {
			msg.Value = parsed
		}
	}

	return msg
}

// decodeJSON — строгий разбор одного JSON-значения; числа остаются json.Number.
func decodeJSON(raw []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// гарантируем отсутствие данных после первого значения
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return v, true
}

// timestamp — миллисекунды Unix-эпохи строкой; нулевое время — "0".
func timestamp(raw domain.RawMessage) string {
	if raw.Time.IsZero() {
		return "0"
	}
	return strconv.FormatInt(raw.Time.UnixMilli(), 10)
}

func headers(h map[string][]byte) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = string(v)
	}
	return out
}

// cloneMessages — копия результата, чтобы вызывающий не разделял срез с аккумулятором.
func cloneMessages(msgs []domain.CollectedMessage) []domain.CollectedMessage {
	out := make([]domain.CollectedMessage, len(msgs))
	for i, m := range msgs {
		m.Headers = maps.Clone(m.Headers)
		out[i] = m
	}
	return out
}
