package jsonrpc2

import (
	"encoding/json"
)

type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      string          `json:"id,omitempty"`
	Notif   bool            `json:"-"`
}

type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      string          `json:"id,omitempty"`
}

type RPCError struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Params  []*InputFieldError `json:"params,omitempty"`
}

type InputFieldError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// SetParams sets r.Params to the JSON representation of v. If JSON
// marshaling fails, it returns an error.
func (me *RPCRequest) SetParams(v interface{}) error {
	if v == nil {
		me.Params = nil
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	me.Params = (json.RawMessage)(b)
	return nil
}

// SetResult sets r.Result to the JSON representation of v. If JSON
// marshaling fails, it returns an error.
func (me *RPCResponse) SetResult(v interface{}) error {
	if v == nil {
		me.Result = nil
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	me.Result = (json.RawMessage)(b)
	return nil
}

// Reply builds a successful response carrying a result.
func Reply(id string, result interface{}) (*RPCResponse, error) {
	resp := &RPCResponse{ID: id, JSONRPC: "2.0"}
	if err := resp.SetResult(result); err != nil {
		return nil, err
	}
	return resp, nil
}

func ReplyWithError(id string, code int, err error) *RPCResponse {
	return &RPCResponse{
		ID:      id,
		JSONRPC: "2.0",
		Error:   &RPCError{Code: code, Message: err.Error()},
	}
}
