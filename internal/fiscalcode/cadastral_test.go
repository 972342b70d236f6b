package fiscalcode

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `paese;prov;codice_catastale
Roma;RM;H501
Milano;MI;F205
Forlì;FC;D704
broken;XX
Nowhere;NW;12AB
`

func TestParseCadastralTable(t *testing.T) {
	table, err := ParseCadastralTable(strings.NewReader(sampleTable))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 2, table.Skipped())

	code, ok := table.Code("roma", "rm")
	assert.True(t, ok)
	assert.Equal(t, "H501", code)

	code, ok = table.Code("FORLÌ", "fc")
	assert.True(t, ok)
	assert.Equal(t, "D704", code)

	_, ok = table.Code("Roma", "MI")
	assert.False(t, ok)
}

func TestParseCadastralTableWithoutHeader(t *testing.T) {
	table, err := ParseCadastralTable(strings.NewReader("\ufeffTorino;TO;L219\n"))
	require.NoError(t, err)
	code, ok := table.Code("Torino", "TO")
	assert.True(t, ok)
	assert.Equal(t, "L219", code)
}

func TestLoadCadastralTableMissingFile(t *testing.T) {
	table, err := LoadCadastralTable(filepath.Join(t.TempDir(), "missing.csv"), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	_, ok := table.Code("Roma", "RM")
	assert.False(t, ok)
}

func TestLoadCadastralTableLatin1(t *testing.T) {
	// "Forlì" with ì encoded as a single ISO-8859-1 byte
	raw := []byte("paese;prov;codice_catastale\nForl\xec;FC;D704\n")
	path := filepath.Join(t.TempDir(), "comuni.csv")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	table, err := LoadCadastralTable(path, LoadOptions{Encoding: EncodingLatin1})
	require.NoError(t, err)
	code, ok := table.Code("Forlì", "FC")
	assert.True(t, ok)
	assert.Equal(t, "D704", code)
}

func TestLoadCadastralTableUnknownEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comuni.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o600))

	_, err := LoadCadastralTable(path, LoadOptions{Encoding: "ebcdic"})
	assert.Error(t, err)
}

func TestMunicipalityByCode(t *testing.T) {
	table, err := ParseCadastralTable(strings.NewReader(sampleTable))
	require.NoError(t, err)

	entry, ok := table.Municipality("h501")
	require.True(t, ok)
	assert.Equal(t, CadastralEntry{Municipality: "ROMA", Province: "RM", Code: "H501"}, entry)

	_, ok = table.Municipality("Z999")
	assert.False(t, ok)
}

func TestCadastralTableConcurrentReads(t *testing.T) {
	table := testTable()
	engine := NewEngine(table)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				code, err := engine.GenerateFromText("Rossi", "Mario", "10/12/1985", "M", "Roma", "RM")
				assert.NoError(t, err)
				assert.Equal(t, "RSSMRA85T10H501O", code)
			}
		}()
	}
	wg.Wait()
}

func TestNilTable(t *testing.T) {
	var table *CadastralTable
	assert.Equal(t, 0, table.Len())
	_, ok := table.Code("Roma", "RM")
	assert.False(t, ok)
}
