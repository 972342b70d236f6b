package fiscalcode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Lookup resolves a birth place to its cadastral code.
type Lookup interface {
	Code(municipality, province string) (string, bool)
}

// CadastralEntry is one row of the cadastral table.
type CadastralEntry struct {
	Municipality string `json:"municipality"`
	Province     string `json:"province"`
	Code         string `json:"code"`
}

type placeKey struct {
	municipality string
	province     string
}

// CadastralTable is read-only after construction and safe for concurrent use.
type CadastralTable struct {
	codes   map[placeKey]string
	places  map[string]placeKey
	skipped int
}

// Encodings accepted by LoadOptions.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

type LoadOptions struct {
	Encoding string
}

func normalizePlace(municipality, province string) placeKey {
	return placeKey{
		municipality: strings.ToUpper(strings.TrimSpace(municipality)),
		province:     strings.ToUpper(strings.TrimSpace(province)),
	}
}

// IsCadastralCode reports whether s has the shape of a cadastral code:
// one letter followed by three digits.
func IsCadastralCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NewCadastralTable builds a table from entries. Entries with a malformed
// code are skipped; later duplicates override earlier ones.
func NewCadastralTable(entries []CadastralEntry) *CadastralTable {
	t := &CadastralTable{
		codes:  make(map[placeKey]string, len(entries)),
		places: make(map[string]placeKey, len(entries)),
	}
	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		key := normalizePlace(e.Municipality, e.Province)
		if key.municipality == "" || key.province == "" || !IsCadastralCode(code) {
			t.skipped++
			continue
		}
		t.codes[key] = code
		if _, ok := t.places[code]; !ok {
			t.places[code] = key
		}
	}
	return t
}

// ParseCadastralTable reads a semicolon separated table with the header
// "paese;prov;codice_catastale". The header row is optional.
func ParseCadastralTable(r io.Reader) (*CadastralTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var entries []CadastralEntry
	skipped := 0
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read cadastral table: %w", err)
		}
		if first {
			first = false
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			if strings.EqualFold(strings.TrimSpace(record[0]), "paese") {
				continue
			}
		}
		if len(record) < 3 {
			skipped++
			continue
		}
		entries = append(entries, CadastralEntry{
			Municipality: record[0],
			Province:     record[1],
			Code:         record[2],
		})
	}

	t := NewCadastralTable(entries)
	t.skipped += skipped
	return t, nil
}

// LoadCadastralTable reads the table at path. A missing file yields an empty
// table and no error: every generation will then report an unknown place.
func LoadCadastralTable(path string, opts LoadOptions) (*CadastralTable, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCadastralTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cadastral table: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(opts.Encoding) {
	case "", EncodingUTF8, "utf8":
	case EncodingLatin1, "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(f)
	case "windows-1252", "cp1252":
		r = charmap.Windows1252.NewDecoder().Reader(f)
	default:
		return nil, fmt.Errorf("unsupported cadastral table encoding %q", opts.Encoding)
	}
	return ParseCadastralTable(r)
}

// Code looks up the cadastral code, matching both parts case-insensitively.
func (t *CadastralTable) Code(municipality, province string) (string, bool) {
	if t == nil {
		return "", false
	}
	code, ok := t.codes[normalizePlace(municipality, province)]
	return code, ok
}

func (t *CadastralTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.codes)
}

// Skipped returns how many rows were dropped while building the table.
func (t *CadastralTable) Skipped() int {
	if t == nil {
		return 0
	}
	return t.skipped
}

// Municipality returns the first place registered under a cadastral code.
func (t *CadastralTable) Municipality(code string) (CadastralEntry, bool) {
	if t == nil {
		return CadastralEntry{}, false
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	k, ok := t.places[code]
	if !ok {
		return CadastralEntry{}, false
	}
	return CadastralEntry{Municipality: k.municipality, Province: k.province, Code: code}, true
}
