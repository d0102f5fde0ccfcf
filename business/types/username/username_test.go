package username_test

import (
	"strings"
	"testing"

	"github.com/rifuud/api/business/types/username"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	u, err := username.Parse("bob.smith@acme")
	require.NoError(t, err)
	assert.Equal(t, "bob.smith@acme", u.String())

	for _, v := range []string{"", "bo", "bob smith", "bob/smith"} {
		_, err := username.Parse(v)
		assert.Error(t, err, v)
	}
}

func Test_ParseAdminLength(t *testing.T) {
	long := strings.Repeat("a", username.AdminMaxLength+1)

	_, err := username.ParseAdmin(long)
	assert.Error(t, err)

	_, err = username.Parse(long)
	assert.NoError(t, err)
}
