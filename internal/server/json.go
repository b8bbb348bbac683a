package server

import (
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// jsonSerializer backs echo's JSON encoding with the goccy codec. Snapshot
// responses carry the full displayed page, which makes this the busiest
// encode path in the process.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, v interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

func (jsonSerializer) Deserialize(c echo.Context, v interface{}) error {
	// the binder wraps any decode error into a 400
	return json.NewDecoder(c.Request().Body).Decode(v)
}
