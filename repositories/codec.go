package repositories

import "github.com/fxamacker/cbor/v2"

// Badger values are encoded with CBOR: compact binary, struct tags, and no
// schema compilation step for the store's record layouts. Times encode as
// RFC3339 with nanoseconds; the default whole-second time encoding would
// shift a record's timestamp on every decode, and message data keys embed
// that timestamp.
var encMode cbor.EncMode

func init() {
	mode, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	encMode = mode
}

func encode(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func decode(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
