package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	answers []string
	secrets []string
	told    []string
	asked   []string
}

func (s *scriptedPrompter) Ask(q string) (string, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return "", errors.New("no more answers")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scriptedPrompter) AskSecret(q string) (string, error) {
	s.asked = append(s.asked, q)
	if len(s.secrets) == 0 {
		return "", errors.New("no more secrets")
	}
	a := s.secrets[0]
	s.secrets = s.secrets[1:]
	return a, nil
}

func (s *scriptedPrompter) Tell(m string) {
	s.told = append(s.told, m)
}

const twoConnections = `{
  "connections": [
    {"name": "dev", "smgrclPath": "/opt/dev/ucybsmcl", "port": 8871, "host": "dev-sm", "phrase": "DEV", "pass": false},
    {"name": "prod", "smgrclPath": "/opt/prod/ucybsmcl", "port": "8872", "host": "prod-sm", "phrase": "PROD", "pass": true,
     "certificate": "/etc/sm/cert.pem", "key": "/etc/sm/key.pem"}
  ]
}`

func TestParseFile(t *testing.T) {
	f, err := ParseFile([]byte(twoConnections))
	require.NoError(t, err)
	require.Len(t, f.Connections, 2)

	assert.Equal(t, Port("8871"), f.Connections[0].Port)
	assert.Equal(t, Port("8872"), f.Connections[1].Port)
	assert.True(t, f.Connections[1].HasPassword)
	assert.Equal(t, "/etc/sm/key.pem", f.Connections[1].Key)
	assert.Empty(t, f.Connections[1].Chain)
}

func TestParseFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":       `{`,
		"no connections": `{}`,
		"empty list":     `{"connections": []}`,
		"not a list":     `{"connections": {"name": "x"}}`,
		"missing keys":   `{"connections": [{"name": "x", "host": "h"}]}`,
		"bad port":       `{"connections": [{"smgrclPath": "p", "port": true, "host": "h", "phrase": "x", "pass": false}]}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFile([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseFile_MissingKeysListed(t *testing.T) {
	_, err := ParseFile([]byte(`{"connections": [{"host": "h", "port": 1}]}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smgrclPath, phrase, pass")
}

func TestChoose(t *testing.T) {
	f, err := ParseFile([]byte(twoConnections))
	require.NoError(t, err)

	p := &scriptedPrompter{answers: []string{"x", "5", "1"}}
	conn, err := f.Choose(p)
	require.NoError(t, err)

	assert.Equal(t, "prod", conn.Name)
	assert.Equal(t, []string{
		"Available configurations",
		" 0 - dev",
		" 1 - prod",
		"Invalid number, try again.",
		"Config out of range, try again.",
	}, p.told)
}

func TestChoose_Single(t *testing.T) {
	f := &File{Connections: []Connection{{Name: "only"}}}

	p := &scriptedPrompter{}
	conn, err := f.Choose(p)
	require.NoError(t, err)

	assert.Equal(t, "only", conn.Name)
	assert.Empty(t, p.asked)
}

func TestFromFile_AsksPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connections.json")
	require.NoError(t, os.WriteFile(path, []byte(twoConnections), 0o600))

	p := &scriptedPrompter{answers: []string{"1"}, secrets: []string{"s3cret"}}
	conn, err := FromFile(path, p)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", conn.Password)
	assert.Equal(t, "prod-sm:8872", conn.Addr())
}

func TestFromFile_NoPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connections.json")
	require.NoError(t, os.WriteFile(path, []byte(twoConnections), 0o600))

	p := &scriptedPrompter{answers: []string{"0"}}
	conn, err := FromFile(path, p)
	require.NoError(t, err)

	assert.Empty(t, conn.Password)
	assert.NotContains(t, p.asked, "Password: ")
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.json"), &scriptedPrompter{})
	assert.Error(t, err)
}

func TestFromPrompt_EnvFallback(t *testing.T) {
	t.Setenv(EnvSmcl, "/opt/env/ucybsmcl")
	t.Setenv(EnvPort, "8871")
	t.Setenv(EnvPhrase, "ENVPHRASE")
	t.Setenv(EnvCertificate, "/etc/sm/cert.pem")
	t.Setenv(EnvKey, "/etc/sm/key.pem")
	t.Setenv(EnvChain, "")

	p := &scriptedPrompter{answers: []string{"", " smhost ", "", ""}, secrets: []string{""}}
	conn, err := FromPrompt(p)
	require.NoError(t, err)

	assert.Equal(t, "/opt/env/ucybsmcl", conn.SmgrclPath)
	assert.Equal(t, "smhost", conn.Host)
	assert.Equal(t, Port("8871"), conn.Port)
	assert.Equal(t, "ENVPHRASE", conn.Phrase)
	assert.False(t, conn.HasPassword)
	assert.Equal(t, "/etc/sm/cert.pem", conn.Certificate)
	assert.Empty(t, conn.Chain)
}

func TestFromPrompt_Answers(t *testing.T) {
	t.Setenv(EnvSmcl, "/opt/env/ucybsmcl")

	p := &scriptedPrompter{answers: []string{"/opt/mine/ucybsmcl", "smhost", "9000", "UC4"}, secrets: []string{"pw"}}
	conn, err := FromPrompt(p)
	require.NoError(t, err)

	assert.Equal(t, "/opt/mine/ucybsmcl", conn.SmgrclPath)
	assert.Equal(t, "smhost:9000", conn.Addr())
	assert.Equal(t, "pw", conn.Password)
	assert.True(t, conn.HasPassword)
}
