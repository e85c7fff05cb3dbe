package configs

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminEmails(t *testing.T) {
	assert.Equal(t, DefaultAdminEmails, ParseAdminEmails(""))
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, ParseAdminEmails(" A@x.com, ,b@Y.com "))
}

func TestCSRFKey(t *testing.T) {
	key, err := CSRFKey(ENV{})
	require.NoError(t, err)
	assert.Nil(t, key)

	raw := make([]byte, 32)
	key, err = CSRFKey(ENV{CSRFKey: base64.URLEncoding.EncodeToString(raw)})
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = CSRFKey(ENV{CSRFKey: base64.URLEncoding.EncodeToString(raw[:10])})
	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	d, err := Dialector(ENV{DBDriver: DriverPostgres})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(ENV{})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = Dialector(ENV{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestLoadSessionKeysRejectsBadLength(t *testing.T) {
	_, err := LoadSessionKeys(ENV{})
	assert.Error(t, err)

	enc := base64.URLEncoding.EncodeToString(make([]byte, 10))
	_, err = LoadSessionKeys(ENV{AppAuthKey: enc, AppEncKey: enc})
	assert.Error(t, err)

	keys, err := LoadSessionKeys(ENV{
		AppAuthKey: base64.URLEncoding.EncodeToString(make([]byte, 64)),
		AppEncKey:  base64.URLEncoding.EncodeToString(make([]byte, 32)),
	})
	require.NoError(t, err)
	assert.Len(t, keys.EncKey, 32)
}
