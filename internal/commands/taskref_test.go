package commands

import (
	"testing"
)

func TestParseTaskRef_Row(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ByID {
		t.Error("expected ByID to be false")
	}
	if ref.Row != 5 {
		t.Errorf("expected Row 5, got %d", ref.Row)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"@1718000000123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.ByID {
		t.Error("expected ByID to be true")
	}
	if ref.ID != 1718000000123 {
		t.Errorf("expected ID 1718000000123, got %d", ref.ID)
	}
	if ref.String() != "@1718000000123" {
		t.Errorf("unexpected String(): %q", ref.String())
	}
}

func TestParseTaskRef_OnlyFirstArg(t *testing.T) {
	ref, err := ParseTaskRef([]string{"2", "new", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Row != 2 {
		t.Errorf("expected Row 2, got %d", ref.Row)
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{})
	if err == nil {
		t.Fatal("expected error for no args")
	}
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid_Error(t *testing.T) {
	for _, arg := range []string{"abc", "@", "@x1", "1a", "-1", "a1", "１"} {
		_, err := ParseTaskRef([]string{arg})
		if err == nil {
			t.Errorf("expected error for %q", arg)
			continue
		}
		expectedMsg := "invalid task reference: " + arg
		if err.Error() != expectedMsg {
			t.Errorf("expected %q, got %q", expectedMsg, err.Error())
		}
	}
}

func TestParseTaskRef_Overflow_Error(t *testing.T) {
	if _, err := ParseTaskRef([]string{"@99999999999999999999"}); err == nil {
		t.Fatal("expected error for id overflow")
	}
}

func TestParseTaskRefs_Mixed(t *testing.T) {
	refs, err := ParseTaskRefs([]string{"1", "@42", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}

	if refs[0].ByID || refs[0].Row != 1 {
		t.Errorf("unexpected ref[0]: %#v", refs[0])
	}
	if !refs[1].ByID || refs[1].ID != 42 {
		t.Errorf("unexpected ref[1]: %#v", refs[1])
	}
	if refs[2].ByID || refs[2].Row != 3 {
		t.Errorf("unexpected ref[2]: %#v", refs[2])
	}
}

func TestParseTaskRefs_InvalidToken_Error(t *testing.T) {
	_, err := ParseTaskRefs([]string{"1", "abc"})
	if err == nil {
		t.Fatal("expected error for invalid token")
	}
	expectedMsg := "invalid task reference: abc"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRefs_NoArgs_Error(t *testing.T) {
	if _, err := ParseTaskRefs(nil); err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}
