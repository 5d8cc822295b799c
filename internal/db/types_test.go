package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      interface{}
		expected StringArray
		wantErr  bool
	}{
		{"bytes", []byte(`["Go","Rust"]`), StringArray{"Go", "Rust"}, false},
		{"string", `["Python"]`, StringArray{"Python"}, false},
		{"nil", nil, StringArray{}, false},
		{"wrong type", 42, nil, true},
		{"bad json", []byte(`{`), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			err := a.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestStringArray_Value(t *testing.T) {
	v, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	v, err = StringArray{"C++", "Go"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["C++","Go"]`, string(v.([]byte)))
}

func TestRoleMatches_ScanAndValue(t *testing.T) {
	matches := RoleMatches{{Role: "Python Developer", MatchScore: 58}}

	v, err := matches.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"role":"Python Developer","matchScore":58}]`, string(v.([]byte)))

	var scanned RoleMatches
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, matches, scanned)

	var empty RoleMatches
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, RoleMatches{}, empty)

	v, err = RoleMatches(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestJobStatus(t *testing.T) {
	for _, s := range []JobStatus{JobQueued, JobProcessing, JobCompleted, JobFailed} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, JobStatus("paused").Valid())

	assert.True(t, JobCompleted.Terminal())
	assert.True(t, JobFailed.Terminal())
	assert.False(t, JobQueued.Terminal())
	assert.False(t, JobProcessing.Terminal())
}

func TestUser_HasResume(t *testing.T) {
	assert.False(t, (&User{}).HasResume())
	assert.True(t, (&User{ResumeKey: "u_1.pdf"}).HasResume())
}

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_init.sql", names[0])

	script, err := migrationFiles.ReadFile(names[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(script), "CREATE TABLE IF NOT EXISTS users"))
	assert.True(t, strings.Contains(string(script), "CREATE TABLE IF NOT EXISTS analysis_jobs"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", normalizeEmail("  Jane@Example.COM "))
}
