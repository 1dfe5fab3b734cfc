package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const houseCSV = `vendor_house_id,created,rough_address,top_region,sub_region,vendor,building_type,property_type,deposit,monthly_price,floor,total_floor
1,2024-03-01 10:00:00,Da'an,1,2,591,apartment,room,20000,10000,3,5
1,2024-03-02 10:00:00,Da'an,1,2,591,apartment,whole,20000,10000,3,5
2,2024-03-01 10:00:00,Xinyi,1,3,591,house,whole,60000,30000,1,3
2,2024-03-02 10:00:00,Xinyi,1,3,591,house,whole,60000,12000,,3
3,2024-03-02 10:00:00,,1,3,591,house,whole,1,1,1,1
`

func setupEnv(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "house_ts.csv")
	require.NoError(t, os.WriteFile(path, []byte(houseCSV), 0o600))

	t.Setenv("CSV_INPUT_PATH", path)
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("FIELD_GROUPS_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRunReportsFindings(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-f", "20240301", "--to", "20240302", "--source", "csv"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Equal(t,
		"[STATIC] House 1 changed 2 ([1, 1]) times!!\n"+
			"[STATIC] Invalid house: 1/2\n"+
			"[SMALL] House 2 field monthly_price change too much, from 12000 to 30000\n"+
			"[SMALL] Invalid house: 1/2\n",
		stdout.String())
}

func TestRunRejectsBadArguments(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing from", []string{"-t", "20240302", "--source", "csv"}},
		{"missing to", []string{"-f", "20240301", "--source", "csv"}},
		{"malformed date", []string{"-f", "2024-03-01", "-t", "20240302", "--source", "csv"}},
		{"inverted window", []string{"-f", "20240303", "-t", "20240302", "--source", "csv"}},
		{"unknown flag", []string{"--since", "20240301"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.NotEqual(t, 0, run(tt.args, &stdout, &stderr))
			assert.Empty(t, stdout.String(), "validators must not run")
		})
	}
}

func TestRunUnknownSource(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-f", "20240301", "-t", "20240302", "--source", "mongo"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
}
