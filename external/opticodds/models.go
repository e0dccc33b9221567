package opticodds

import (
	"bytes"
	"encoding/json"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
)

// envelope is the {"data": [...]} wrapper shared by every v3 endpoint.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// oddsFixture is one entry of the odds endpoint, mapped field by field so one odd value
// only degrades its own quote.
type oddsFixture struct {
	ID     string
	Quotes []odds.Quote
}

// decodeRecords returns the data array of an envelope body. A missing or non-array
// data field yields zero records.
func decodeRecords[T any](raw []byte) ([]T, error) {
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, crerr.Wrap(err, "decode provider envelope")
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, nil
	}
	var out []T
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, crerr.Wrap(err, "decode provider records")
	}
	return out, nil
}

// decodeObjects is decodeRecords for loosely shaped records; array entries that are not objects are skipped.
func decodeObjects(raw []byte) ([]map[string]any, error) {
	items, err := decodeRecords[any](raw)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out, nil
}
