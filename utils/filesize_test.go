package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatByteSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{1, "1 byte"},
		{512, "512 bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{104857600, "100.0 MB"},
		{1 << 30, "1.0 GB"},
		{1 << 40, "1.0 TB"},
		{1 << 50, "1.0 PB"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatByteSize(c.size), "size=%d", c.size)
	}
}

func TestUniqueString(t *testing.T) {
	assert.Equal(t, []string{"shp", "dbf"}, UniqueString([]string{"shp", "dbf", "shp"}))
	assert.Equal(t, []string{}, UniqueString(nil))
}
