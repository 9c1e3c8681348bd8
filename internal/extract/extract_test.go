// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/onboard-tui/internal/api"
)

func decode(t *testing.T, raw string) *api.ExtractedData {
	t.Helper()
	var d api.ExtractedData
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return &d
}

// =============================================================================
// TYPE GATE TESTS
// =============================================================================

func TestInspect_AllowedTypes(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"cv.pdf":    MIMEPDF,
		"cv.DOC":    MIMEDOC,
		"cv.docx":   MIMEDOCX,
		"notes.txt": MIMETXT,
		"scan.jpg":  MIMEJPEG,
		"scan.jpeg": MIMEJPEG,
		"photo.png": MIMEPNG,
	}
	for name, want := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0600))

		doc, err := Inspect(path)
		require.NoError(t, err, name)
		assert.Equal(t, want, doc.MIME, name)
		assert.Equal(t, name, doc.Name)
		assert.Equal(t, int64(4), doc.Size)
	}
}

func TestInspect_RejectsZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04"), 0600))

	_, err := Inspect(path)
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "archive.zip")
	assert.Equal(t, "Định dạng tệp không hợp lệ: archive.zip", InvalidFileMessage("archive.zip"))
}

func TestInspect_SniffsWhenNoExtension(t *testing.T) {
	dir := t.TempDir()

	pdf := filepath.Join(dir, "cv")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.7\n..."), 0600))
	doc, err := Inspect(pdf)
	require.NoError(t, err)
	assert.Equal(t, MIMEPDF, doc.MIME)

	txt := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(txt, []byte("Nguyễn Văn A\nKỹ sư phần mềm"), 0600))
	doc, err = Inspect(txt)
	require.NoError(t, err)
	assert.Equal(t, MIMETXT, doc.MIME)

	bin := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(bin, []byte{0x1f, 0x8b, 0x08, 0x00}, 0600))
	_, err = Inspect(bin)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInspect_DirectoryAndMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Inspect(dir)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Inspect(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedType)
}

func TestDocument_Size(t *testing.T) {
	d := Document{Size: 3 * 1024 * 1024}
	assert.Equal(t, "3.00 MB", d.SizeMB())
	assert.False(t, d.OverHint())
	assert.True(t, Document{Size: SizeHint + 1}.OverHint())
}

// =============================================================================
// DERIVATION TESTS
// =============================================================================

func TestConvertToISO(t *testing.T) {
	tests := map[string]string{
		"3/7/1998":   "1998-07-03",
		"15/12/2001": "2001-12-15",
		" 1/1/2000 ": "2000-01-01",
		"1998-07-03": "1998-07-03",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ConvertToISO(in), "ConvertToISO(%q)", in)
	}
}

func TestPositionApplied(t *testing.T) {
	current := []api.Experience{
		{Position: "QA", Duration: "2019–2021"},
		{Position: "Dev", Duration: "2022–present"},
	}
	assert.Equal(t, "Dev", PositionApplied(current))

	past := []api.Experience{
		{Position: "Intern", Duration: "2019–2020"},
		{Position: "Junior", Duration: "2020–2021"},
	}
	assert.Equal(t, "Junior", PositionApplied(past))

	vietnamese := []api.Experience{
		{Position: "Lead", Duration: "2020 - Hiện NAY"},
		{Position: "Other", Duration: "2023 - present"},
	}
	assert.Equal(t, "Lead", PositionApplied(vietnamese), "first current entry wins")

	assert.Equal(t, "", PositionApplied(nil))
}

func TestDeriveForm_AutoFill(t *testing.T) {
	d := decode(t, `{
		"personal_info": {"full_name": "Ngoc", "birth_date": "3/7/1998"},
		"experience": [
			{"position": "QA", "company": "X", "duration": "2019-2021"},
			{"position": "Dev", "company": "Y", "duration": "2022-present"}
		]
	}`)

	form := DeriveForm(d)
	assert.Equal(t, Form{
		"full_name":        "Ngoc",
		"email":            "",
		"phone":            "",
		"address":          "",
		"date_of_birth":    "1998-07-03",
		"id_number":        "",
		"education":        "",
		"experience":       "QA tại X\nDev tại Y",
		"skills":           "",
		"position_applied": "Dev",
	}, form)
}

func TestDeriveForm_AllBlocks(t *testing.T) {
	d := decode(t, `{
		"personal_info": {"full_name": "Trần Lan", "email": "lan@example.com", "phone": 912345678,
			"address": "Hà Nội", "id_number": "001099000123"},
		"education": [{"degree": "Cử nhân CNTT", "school": "ĐH Bách Khoa"}, {"degree": "Thạc sĩ", "school": "ĐH Quốc gia"}],
		"skills": {"technical": ["Go", "SQL"], "languages": ["Tiếng Anh"]}
	}`)

	form := DeriveForm(d)
	assert.Equal(t, "912345678", form["phone"])
	assert.Equal(t, "Cử nhân CNTT - ĐH Bách Khoa, Thạc sĩ - ĐH Quốc gia", form["education"])
	assert.Equal(t, "Go, SQL, Tiếng Anh", form["skills"])
	assert.Equal(t, "", form["date_of_birth"])
	assert.Equal(t, "", form["position_applied"])
	assert.Len(t, form, len(Fields))
}

func TestDeriveForm_Nil(t *testing.T) {
	assert.Empty(t, DeriveForm(nil))
}

// =============================================================================
// EXPORT TESTS
// =============================================================================

func TestMarshal_JSONKeepsSchemaOrder(t *testing.T) {
	form := Form{"position_applied": "Dev", "full_name": "Ngoc", "zeta": "extra"}

	data, err := Marshal(form, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"full_name\": \"Ngoc\",\n  \"position_applied\": \"Dev\",\n  \"zeta\": \"extra\"\n}", string(data))

	var back map[string]string
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, map[string]string(form), back)
}

func TestMarshal_YAML(t *testing.T) {
	form := Form{"full_name": "Ngoc", "experience": "QA tại X\nDev tại Y"}

	data, err := Marshal(form, FormatYAML)
	require.NoError(t, err)

	var back map[string]string
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, map[string]string(form), back)
	assert.Less(t, indexOf(string(data), "full_name"), indexOf(string(data), "experience"))

	_, err = Marshal(form, "xml")
	assert.Error(t, err)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	form := Form{"full_name": "Ngoc"}

	path, err := Export(form, FormatJSON, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "form_data.json"), path)

	path, err = Export(form, FormatYAML, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "form_data.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "full_name: Ngoc\n", string(data))

	assert.Equal(t, FormatYAML, FormatFromPath("out.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("out.txt"))
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestEntries(t *testing.T) {
	d := decode(t, `{"personal_info": {"full_name": "Ngoc"}, "document_type": "cv", "summary": "", "years": 3, "photo": null}`)

	got := Entries(d)
	require.Len(t, got, 5)
	assert.Equal(t, Entry{Key: "document_type", Label: "document type", Value: "cv"}, got[0])
	assert.Equal(t, Entry{Key: "personal_info", Label: "personal info", Value: `{"full_name":"Ngoc"}`}, got[1])
	assert.Equal(t, "N/A", got[2].Value) // photo
	assert.Equal(t, "N/A", got[3].Value) // summary
	assert.Equal(t, "3", got[4].Value)

	assert.Nil(t, Entries(nil))
}

func TestPrettyJSON(t *testing.T) {
	d := decode(t, `{"b": 1, "a": "x"}`)
	out, err := PrettyJSON(d)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": \"x\",\n  \"b\": 1\n}", out)
}
