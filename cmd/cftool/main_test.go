package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comuni.csv")
	require.NoError(t, os.WriteFile(path, []byte("paese;prov;codice_catastale\nRoma;RM;H501\n"), 0o600))
	return path
}

func TestGenerateCommand(t *testing.T) {
	table := writeTable(t)

	out, err := run(t, "generate",
		"--surname", "Rossi", "--name", "Mario", "--birth-date", "10/12/1985",
		"--sex", "M", "--municipality", "Roma", "--province", "RM", "--table", table)
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA85T10H501O\n", out)

	_, err = run(t, "generate",
		"--surname", "Rossi", "--name", "Mario", "--birth-date", "10/12/1985",
		"--sex", "M", "--municipality", "Milano", "--province", "MI", "--table", table)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "RSSMRA85T10H501O")
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA85T10H501O\tvalid\n", out)

	out, err = run(t, "validate", "RSSMRA85T10H501O", "RSSMRA85T10H501A")
	assert.ErrorIs(t, err, errInvalidCodes)
	assert.Contains(t, out, "RSSMRA85T10H501A\tinvalid")
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "BNCMRA90H55F205N")
	require.NoError(t, err)
	assert.Contains(t, out, `"F205"`)

	_, err = run(t, "decode", "BNCMRA90H55F205A")
	assert.Error(t, err)
}

func TestOpticsCommands(t *testing.T) {
	out, err := run(t, "keratometry", "--mm", "7.5")
	require.NoError(t, err)
	assert.Equal(t, "45.00 D\n", out)

	out, err = run(t, "keratometry", "--diopters", "45")
	require.NoError(t, err)
	assert.Equal(t, "7.50 mm\n", out)

	_, err = run(t, "keratometry")
	assert.Error(t, err)

	out, err = run(t, "contact-lens", "--sphere", "-5", "--cylinder", "-2", "--axis", "180")
	require.NoError(t, err)
	assert.Equal(t, "-4.75 -1.75 x 180\n", out)

	_, err = run(t, "contact-lens", "--sphere", "-5", "--axis", "200")
	assert.Error(t, err)
}
