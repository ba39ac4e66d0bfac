package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"named", "blue", "#55aaff"},
		{"named upper case", "Orange", "#ff9922"},
		{"first known word wins", "task red blue", "#ff6655"},
		{"short hex", "#5AF", "#55aaff"},
		{"long hex", "#123456", "#123456"},
		{"status name", "warning", "#ff9900"},
		{"unknown name", "mauve", "#eeeeee"},
		{"empty", "", "#eeeeee"},
		{"bad hex", "#zzz", "#eeeeee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestRGB(t *testing.T) {
	r, g, b := RGB("ok")
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})

	r, g, b = RGB("nonsense")
	assert.Equal(t, [3]uint8{0xee, 0xee, 0xee}, [3]uint8{r, g, b})
}
