package migrate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"
)

const versionLayout = "20060102150405"

var (
	nameSanitizeRe = regexp.MustCompile(`[^a-z0-9]+`)
	nowFunc        = func() time.Time { return time.Now().UTC() }
)

var sqlTemplate = template.Must(template.New("migration").Parse(`-- +goose Up
-- +goose StatementBegin
-- {{.Name}}: statements must run on postgres and sqlite3
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback {{.Name}}
-- +goose StatementEnd
`))

// CreateSQLMigration writes an empty goose migration named
// <dir>/<YYYYMMDDHHMMSS>_<name>.sql and returns its path. The version moves
// forward a second at a time until it is unused in dir.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	safe := migrationName(name)
	if safe == "" {
		return "", fmt.Errorf("name %q results in empty sanitized filename", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	used, err := usedVersions(dir)
	if err != nil {
		return "", err
	}
	at := nowFunc()
	for used[at.Format(versionLayout)] {
		at = at.Add(time.Second)
	}

	var body bytes.Buffer
	if err := sqlTemplate.Execute(&body, struct{ Name string }{Name: safe}); err != nil {
		return "", fmt.Errorf("render migration: %w", err)
	}

	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", at.Format(versionLayout), safe))
	if err := os.WriteFile(fullpath, body.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func migrationName(name string) string {
	return strings.Trim(nameSanitizeRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
}

func usedVersions(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}
	used := make(map[string]bool, len(entries))
	for _, e := range entries {
		if m := sqlFileRe.FindStringSubmatch(e.Name()); m != nil {
			used[m[1]] = true
		}
	}
	return used, nil
}
