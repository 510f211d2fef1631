package diag

import (
	"errors"
	"fmt"
	"testing"

	"kielo/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{NameUndeclared, "NAME3001"},
		{TypeMismatch, "TYPE4001"},
		{GenOutOfNames, "GEN5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{SynTrailingTokens, KindSyntax},
		{NameRedeclared, KindName},
		{TypeCondNotBool, KindType},
		{GenUnsupportedShape, KindCodegenLimit},
		{UnknownCode, KindUnknown},
	}
	for _, tt := range tests {
		if got := KindOf(tt.code); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestErrorfCarriesCode(t *testing.T) {
	err := Errorf(NameUndeclared, source.Pos{Line: 3, Column: 7}, "'%s' does not exist", "x")
	if CodeOf(err) != NameUndeclared {
		t.Errorf("CodeOf = %v, want NameUndeclared", CodeOf(err))
	}
	wrapped := fmt.Errorf("check failed: %w", err)
	if CodeOf(wrapped) != NameUndeclared {
		t.Error("CodeOf should see through wrapping")
	}
	var de *Error
	if !errors.As(wrapped, &de) {
		t.Fatal("errors.As failed")
	}
	if de.Diag.Pos != (source.Pos{Line: 3, Column: 7}) {
		t.Errorf("pos = %v", de.Diag.Pos)
	}
	if CodeOf(errors.New("plain")) != UnknownCode {
		t.Error("plain error should map to UnknownCode")
	}
}
