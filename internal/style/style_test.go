package style

import "testing"

func TestInvalidColor(t *testing.T) {
	var c Color
	if c.Valid {
		t.Error("zero Color should be invalid")
	}
	if c != Invalid {
		t.Error("zero Color should equal Invalid")
	}
	if got := c.String(); got != "invalid" {
		t.Errorf("String() = %q, want %q", got, "invalid")
	}
	if got := c.Hex(); got != "" {
		t.Errorf("Hex() = %q, want empty", got)
	}
}

func TestFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#FF8040", RGB(255, 128, 64), false},
		{"ff8040", RGB(255, 128, 64), false},
		{"#FFF", RGB(255, 255, 255), false},
		{"#000", RGB(0, 0, 0), false},
		{"invalid", Invalid, true},
		{"#GGG", Invalid, true},
	}

	for _, tt := range tests {
		got, err := FromHex(tt.hex)
		if (err != nil) != tt.wantErr {
			t.Errorf("FromHex(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FromHex(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := RGB(1, 2, 3).String(); got != "#010203" {
		t.Errorf("String() = %q, want %q", got, "#010203")
	}
	if got := RGBA(1, 2, 3, 4).String(); got != "#010203/4" {
		t.Errorf("String() = %q, want %q", got, "#010203/4")
	}
}

func TestLightenDarken(t *testing.T) {
	gray := Gray
	lighter := gray.Lighten(0.2)
	darker := gray.Darken(0.2)

	if lighter.R <= gray.R {
		t.Errorf("Lighten() R = %d, want > %d", lighter.R, gray.R)
	}
	if darker.R >= gray.R {
		t.Errorf("Darken() R = %d, want < %d", darker.R, gray.R)
	}
	if Invalid.Lighten(0.5).Valid {
		t.Error("Lighten() of invalid colour should stay invalid")
	}
	if got := White.Lighten(0.5); got != White {
		t.Errorf("Lighten() of white = %v, want %v", got, White)
	}
}

func TestBlend(t *testing.T) {
	if got := Black.Blend(White, 0); got != Black {
		t.Errorf("Blend(0) = %v, want %v", got, Black)
	}
	if got := Black.Blend(White, 1); got != White {
		t.Errorf("Blend(1) = %v, want %v", got, White)
	}
	if got := Invalid.Blend(Red, 0.5); got != Red {
		t.Errorf("Invalid.Blend() = %v, want %v", got, Red)
	}
	if got := Red.Blend(Invalid, 0.5); got != Red {
		t.Errorf("Blend(Invalid) = %v, want %v", got, Red)
	}
	mid := Black.Blend(White, 0.5)
	if mid.R < 120 || mid.R > 135 {
		t.Errorf("Blend(0.5).R = %d, want about 128", mid.R)
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(Red).WithBackground(Blue).WithAttributes(AttrBold)
	if s.Foreground != Red || s.Background != Blue {
		t.Errorf("colours = %v/%v, want %v/%v", s.Foreground, s.Background, Red, Blue)
	}
	if !s.Attributes.Has(AttrBold) {
		t.Error("expected bold attribute")
	}
	if s.Attributes.Has(AttrDim) {
		t.Error("unexpected dim attribute")
	}
}
