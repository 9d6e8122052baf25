package qrimg

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.Color
		wantErr bool
	}{
		{"black with hash", "#000000", color.RGBA{A: 0xff}, false},
		{"white without hash", "ffffff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"mixed case", "#AaBbCc", color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, false},
		{"too short", "#fff", nil, true},
		{"not hex", "#zzzzzz", nil, true},
		{"empty", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRender(t *testing.T) {
	png, err := Render("https://parking.mnccom.com/spring-gala", 256, "#000000", "#ffffff")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// png magic
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRender_SizeOutOfRange(t *testing.T) {
	_, err := Render("https://example.com/x", 16, "#000000", "#ffffff")
	assert.Error(t, err)

	_, err = Render("https://example.com/x", 4096, "#000000", "#ffffff")
	assert.Error(t, err)
}

func TestRender_BadColor(t *testing.T) {
	_, err := Render("https://example.com/x", 256, "red", "#ffffff")
	assert.Error(t, err)
}
