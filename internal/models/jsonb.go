package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Sub-collections are stored as JSONB columns on their parent row.

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("models: cannot scan %T into a JSON column", src)
	}
}

// jsonValue encodes v as text; lib/pq would send []byte as bytea.
func jsonValue(v any, empty string) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return empty, nil
	}
	return string(raw), nil
}

func (l Likes) Value() (driver.Value, error) { return jsonValue([]Like(l), "[]") }
func (l *Likes) Scan(src any) error { return scanJSON(src, (*[]Like)(l)) }
func (c Comments) Value() (driver.Value, error) { return jsonValue([]Comment(c), "[]") }
func (c *Comments) Scan(src any) error { return scanJSON(src, (*[]Comment)(c)) }
func (e Experiences) Value() (driver.Value, error) { return jsonValue([]Experience(e), "[]") }
func (e *Experiences) Scan(src any) error { return scanJSON(src, (*[]Experience)(e)) }
func (e Educations) Value() (driver.Value, error) { return jsonValue([]Education(e), "[]") }
func (e *Educations) Scan(src any) error { return scanJSON(src, (*[]Education)(e)) }
func (s SocialLinks) Value() (driver.Value, error) { return jsonValue(map[string]string(s), "{}") }
func (s *SocialLinks) Scan(src any) error { return scanJSON(src, (*map[string]string)(s)) }
