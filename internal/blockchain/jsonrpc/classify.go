package jsonrpc

import (
	"encoding/json"

	"github.com/goodnatureofminers/argus-backend/internal/blockchain"
)

// Classify returns the raw result of a response, or a *blockchain.ProtocolError when the node
// answered with an error object or with neither result nor error. A JSON null result is
// returned as is; what null means depends on the method.
func Classify(resp *Response) (json.RawMessage, error) {
	if resp == nil {
		return nil, &blockchain.ProtocolError{Message: "empty response"}
	}
	if resp.Error != nil {
		return nil, &blockchain.ProtocolError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if len(resp.Result) == 0 {
		return nil, &blockchain.ProtocolError{Message: "empty response"}
	}
	return resp.Result, nil
}

// IsNull reports whether a raw result is the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
