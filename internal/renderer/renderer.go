package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer implements Echo's render interface for templ components.
type Renderer struct{}

// Render writes a templ component to the response writer.
func (t *Renderer) Render(w io.Writer, _ string, data interface{}, c echo.Context) error {
	tc, ok := data.(templ.Component)
	if !ok {
		return fmt.Errorf("invalid type %T", data)
	}

	return tc.Render(c.Request().Context(), w)
}

// String renders a component to a string.
func String(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
