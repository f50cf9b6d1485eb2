package bridge

import (
	"encoding/json"
	"testing"
)

func TestRequestRoundTripsThroughJSON(t *testing.T) {
	req := Request{
		Cmd:       CmdCallFunction,
		SessionID: "abc-123",
		ReqID:     7,
		Target:    "math.sqrt",
		Args:      []Value{{Kind: "value", Value: 4}},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Request
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Cmd != req.Cmd || got.Target != req.Target || got.ReqID != req.ReqID {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, req)
	}
}

func TestResponseErrorDecodes(t *testing.T) {
	line := `{"kind":"error","req_id":3,"error":{"code":"StaleHandle","message":"gone"}}`
	var resp Response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Kind != "error" || resp.Error == nil || resp.Error.Code != StaleHandle {
		t.Errorf("unexpected response: %+v", resp)
	}
}
