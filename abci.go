package covenant

import (
	"fmt"

	"github.com/iov-one/covenant/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

//---------- helpers for handling responses --------

// DeliverOrError returns an abci response for a call, converting the error
// message if present, or using the successful Result.
func DeliverOrError(result *Result, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// ToABCI converts our internal type into an abci response. Each event
// attribute becomes a tag prefixed with the event type.
func (r Result) ToABCI() abci.ResponseDeliverTx {
	var tags []common.KVPair
	for _, e := range r.Events {
		for _, a := range e.Attributes {
			tags = append(tags, common.KVPair{
				Key:   []byte(e.Type + "." + string(a.Key)),
				Value: a.Value,
			})
		}
	}
	return abci.ResponseDeliverTx{
		Data: r.Data,
		Log:  r.Log,
		Tags: tags,
	}
}

// ParseDeliverOrError is the inverse of DeliverOrError.
// It will parse back the abci response to return our internal format, or
// return an error on failed call.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*Result, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &Result{
		Data: res.Data,
		Log:  res.Log,
	}, nil
}

// DeliverTxError converts any error into a abci.ResponseDeliverTx, preserving
// as much info as possible.
// When in debug mode always the full error information is returned.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver call: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}
