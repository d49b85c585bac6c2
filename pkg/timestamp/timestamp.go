package timestamp

import (
	"fmt"
	"time"
)

// Layout is the wire format for every timestamp the API emits:
// second granularity, UTC, trailing Z.
const Layout = "2006-01-02T15:04:05Z"

// UTC wraps time.Time so projections serialize with Layout.
type UTC time.Time

func Of(t time.Time) UTC {
	return UTC(t.UTC().Truncate(time.Second))
}

func Ptr(t *time.Time) *UTC {
	if t == nil {
		return nil
	}
	u := Of(*t)
	return &u
}

func (u UTC) Time() time.Time {
	return time.Time(u)
}

func (u UTC) String() string {
	return time.Time(u).UTC().Format(Layout)
}

func (u UTC) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *UTC) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("timestamp: invalid value %s", raw)
	}
	parsed, err := time.Parse(Layout, raw[1:len(raw)-1])
	if err != nil {
		return err
	}
	*u = UTC(parsed)
	return nil
}
