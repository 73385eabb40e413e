package library

import (
	"fmt"
	"strconv"

	"rhythmsync/internal/shared"
)

// TrackID identifies a track within one loaded iTunes library. iTunes
// exports encode it either as an integer or as a numeric string, so both
// forms are accepted when decoding.
type TrackID uint64

// ParseTrackID parses a TrackID from its decimal string form.
func ParseTrackID(s string) (TrackID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", shared.ErrBadTrackID, s)
	}
	return TrackID(n), nil
}

// String returns the decimal form of the identifier.
func (id TrackID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// UnmarshalPlist implements the plist.Unmarshaler interface, accepting
// integer and numeric-string encodings.
func (id *TrackID) UnmarshalPlist(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case uint64:
		*id = TrackID(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("%w: negative value %d", shared.ErrBadTrackID, v)
		}
		*id = TrackID(v)
	case string:
		parsed, err := ParseTrackID(v)
		if err != nil {
			return err
		}
		*id = parsed
	default:
		return fmt.Errorf("%w: unsupported type %T", shared.ErrBadTrackID, raw)
	}

	return nil
}
