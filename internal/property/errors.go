package property

import "github.com/tripwire-go/twdb/pkg/errors"

func archiveShortReadErr(want, got int) error {
	return errors.NewArchiveError(nil, errors.ErrorCodeArchiveIO, "short read deserializing property vector").
		WithDetail("wantBytes", want).
		WithDetail("gotBytes", got)
}

func newUnknownKindErr(kind string) error {
	return errors.NewArchiveError(nil, errors.ErrorCodeArchiveFormat, "unknown property value kind").
		WithDetail("kind", kind)
}
