package transport

import (
	"encoding/json"
	"testing"
)

func TestIDListDecodesSingleString(t *testing.T) {
	var req RemoveUsersRequest
	if err := json.Unmarshal([]byte(`{"ids": "abc-123"}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.IDs) != 1 || req.IDs[0] != "abc-123" {
		t.Fatalf("expected [abc-123], got %v", req.IDs)
	}
}

func TestIDListDecodesArray(t *testing.T) {
	var req RemoveUsersRequest
	if err := json.Unmarshal([]byte(`{"ids": ["a", "b"]}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.IDs) != 2 {
		t.Fatalf("expected 2 ids, got %v", req.IDs)
	}
}

func TestIDListTrimsAndDeduplicates(t *testing.T) {
	var req RemoveUsersRequest
	if err := json.Unmarshal([]byte(`{"ids": [" a ", "a", "", "b"]}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.IDs) != 2 || req.IDs[0] != "a" || req.IDs[1] != "b" {
		t.Fatalf("expected [a b], got %v", req.IDs)
	}
}

func TestIDListRejectsOtherShapes(t *testing.T) {
	var req RemoveUsersRequest
	if err := json.Unmarshal([]byte(`{"ids": 42}`), &req); err == nil {
		t.Fatal("expected a decode error for a numeric ids field")
	}
}

func TestIDListUUIDsRejectsMalformedIDs(t *testing.T) {
	list := IDList{"not-a-uuid"}
	if _, err := list.UUIDs(); err == nil {
		t.Fatal("expected an error for a malformed uuid")
	}
}

func TestIDListUUIDsParsesWellFormedIDs(t *testing.T) {
	list := IDList{"5167dbd3-23b0-44c2-a034-1f2ea4805a4c"}
	ids, err := list.UUIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 uuid, got %d", len(ids))
	}
}

func TestUpdateRolesRequestDistinguishesAbsentFromEmpty(t *testing.T) {
	var absent UpdateRolesRequest
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if absent.Roles != nil {
		t.Fatal("absent roles field must decode to nil")
	}

	var empty UpdateRolesRequest
	if err := json.Unmarshal([]byte(`{"roles": []}`), &empty); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Roles == nil || len(*empty.Roles) != 0 {
		t.Fatal("empty roles field must decode to a non-nil empty slice")
	}
}
