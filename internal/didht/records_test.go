package didht

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_Shape(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	encoded := EncodeKey(pub)

	records := Records(pub)
	require.Len(t, records, 2)

	root, key := records[0], records[1]
	assert.Equal(t, "_did."+encoded+".", root.Name)
	assert.Equal(t, "_k0._did."+encoded+".", key.Name)
	for _, r := range records {
		assert.Equal(t, "TXT", r.Type)
		assert.Equal(t, 7200, r.TTL)
		assert.NotContains(t, r.RData, " ")
	}
	assert.Contains(t, root.RData, "v=0;vm=k0;auth=k0;")
	assert.Contains(t, key.RData, "id=0;t=0;k="+hex.EncodeToString(pub))
}

func TestEnvelope_Layout(t *testing.T) {
	pub := make([]byte, ed25519.PublicKeySize)
	encoded := EncodeKey(pub)

	got := string(Envelope(Records(pub)))
	want := "_did." + encoded + ". TXT 7200 v=0;vm=k0;auth=k0;\n" +
		"_k0._did." + encoded + ". TXT 7200 id=0;t=0;k=" + strings.Repeat("00", 32) + "\n"
	assert.Equal(t, want, got)
}

func TestParseEnvelope_RoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	records := Records(pub)

	parsed, err := ParseEnvelope(Envelope(records))
	require.NoError(t, err)
	assert.Equal(t, records, parsed)
}

func TestParseEnvelope_Errors(t *testing.T) {
	cases := map[string]string{
		"missing underscore": "did.x. TXT 7200 v=0;",
		"truncated":          "_did.x. TXT 7200",
		"bad ttl":            "_did.x. TXT soon v=0;",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEnvelope([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestParseRData(t *testing.T) {
	pairs, err := ParseRData(RootRData)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"v": "0", "vm": "k0", "auth": "k0"}, pairs)

	_, err = ParseRData("v0;")
	assert.Error(t, err)
}
