package scanner

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		src     string
		wantErr error
		wantMsg string
	}{
		{src: "3 + 4 * (2 - 1)"},
		{src: "42"},
		{src: "((2))"},
		{src: "(1 + 2) / (3 - 4)"},
		{src: "", wantErr: ErrUnexpectedToken, wantMsg: "ends after start"},
		{src: "3 +", wantErr: ErrUnexpectedToken, wantMsg: "ends after operator"},
		{src: "+3", wantErr: ErrUnexpectedToken, wantMsg: "operator after start at offset 0"},
		{src: "1 2", wantErr: ErrUnexpectedToken, wantMsg: "number after number at offset 2"},
		{src: "()", wantErr: ErrUnexpectedToken, wantMsg: "closing parenthesis after opening parenthesis"},
		{src: "2(3)", wantErr: ErrUnexpectedToken, wantMsg: "opening parenthesis after number"},
		{src: "(1)(2)", wantErr: ErrUnexpectedToken},
		{src: "(1))", wantErr: ErrUnbalanced, wantMsg: "extra closing parenthesis at offset 3"},
		{src: "((1)", wantErr: ErrUnbalanced, wantMsg: "1 unclosed"},
		{src: "3 $ 4", wantErr: ErrInvalidToken, wantMsg: "at offset 2"},
		{src: "7 % 2", wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := Validate(tt.src)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func FuzzValidate(f *testing.F) {
	f.Add("3 + 4 * (2 - 1)")
	f.Add("((1)")
	f.Fuzz(func(t *testing.T, src string) {
		if err := Validate(src); err != nil {
			return
		}
		depth := 0
		for _, tok := range All(src) {
			switch tok.Kind {
			case Unknown:
				t.Fatalf("valid expression %q contains %v", src, tok)
			case OpenBrace:
				depth++
			case CloseBrace:
				depth--
			}
			if depth < 0 {
				t.Fatalf("valid expression %q closes too early", src)
			}
		}
		if depth != 0 {
			t.Fatalf("valid expression %q leaves %d open", src, depth)
		}
	})
}
