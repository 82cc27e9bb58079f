package snapshot

import (
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Store persists market-listing snapshots so the gateway can boot when the
// venue listing call is unavailable.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, body []byte) error
}

// Record is one market listing entry with its loaded attributes, enough to
// rebuild the canonical registry without the venue.
type Record struct {
	Name       string `msgpack:"name"`
	Address    string `msgpack:"address"`
	ProgramID  string `msgpack:"programId"`
	Deprecated bool   `msgpack:"deprecated"`

	MinimumOrderSize     float64 `msgpack:"minimumOrderSize"`
	TickSize             float64 `msgpack:"tickSize"`
	MinimumBaseIncrement string  `msgpack:"minimumBaseIncrement,omitempty"`
	MakerFee             float64 `msgpack:"makerFee"`
	TakerFee             float64 `msgpack:"takerFee"`
}

func Encode(records []Record) ([]byte, error) {
	return msgpack.Marshal(records)
}

func Decode(body []byte) ([]Record, error) {
	var records []Record
	if err := msgpack.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FileStore keeps snapshots on the local filesystem.
type FileStore struct {
	Dir string
}

func (s *FileStore) Load(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, key))
}

func (s *FileStore) Save(key string, body []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, key), body, 0o644)
}
