package orm

import (
	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
)

// Record is what is stored in a bucket. It is a protobuf message that
// can check its own consistency before being persisted.
type Record interface {
	proto.Message
	covenant.Validater
}

// Marshal validates and serializes a record.
func Marshal(r Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	bz, err := proto.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

// Unmarshal loads serialized data into r, replacing its content.
func Unmarshal(bz []byte, r Record) error {
	if err := proto.Unmarshal(bz, r); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
