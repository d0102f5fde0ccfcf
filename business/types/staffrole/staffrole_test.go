package staffrole_test

import (
	"testing"

	"github.com/rifuud/api/business/types/staffrole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseNull(t *testing.T) {
	n, err := staffrole.ParseNull("")
	require.NoError(t, err)
	assert.False(t, n.Valid())
	assert.Equal(t, "", n.String())
	assert.False(t, staffrole.ToSQLNullString(n).Valid)

	n, err = staffrole.ParseNull("Chef")
	require.NoError(t, err)
	r, ok := n.Role()
	assert.True(t, ok)
	assert.True(t, r.Equal(staffrole.Chef))
	assert.Equal(t, "Chef", staffrole.ToSQLNullString(n).String)

	_, err = staffrole.ParseNull("Sommelier")
	assert.Error(t, err)
}
