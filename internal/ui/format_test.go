package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name   string
		bytes  uint64
		expect string
	}{
		{
			name:   "zero",
			bytes:  0,
			expect: "0 B",
		},
		{
			name:   "bytes",
			bytes:  512,
			expect: "512 B",
		},
		{
			name:   "just under KB",
			bytes:  1023,
			expect: "1023 B",
		},
		{
			name:   "exactly 1 KB",
			bytes:  1024,
			expect: "1 KB",
		},
		{
			name:   "one and a half KB",
			bytes:  1536,
			expect: "1.5 KB",
		},
		{
			name:   "megabytes",
			bytes:  1024 * 1024 * 50,
			expect: "50 MB",
		},
		{
			name:   "exactly 1 GB",
			bytes:  1073741824,
			expect: "1 GB",
		},
		{
			name:   "fractional GB",
			bytes:  1024*1024*1024 + 1024*1024*512,
			expect: "1.5 GB",
		},
		{
			name:   "terabytes",
			bytes:  1024 * 1024 * 1024 * 1024 * 2,
			expect: "2 TB",
		},
		{
			name:   "beyond TB stays in TB",
			bytes:  1024 * 1024 * 1024 * 1024 * 1024,
			expect: "1024 TB",
		},
		{
			name:   "two decimal places",
			bytes:  1024 + 256 + 10,
			expect: "1.26 KB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "1.17%", FormatPercent(1.1718))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "100.00%", FormatPercent(100))
}
