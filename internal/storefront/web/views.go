package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
)

const layoutMain = "layouts/main"

//go:embed views
var viewsFS embed.FS

// NewViews builds the template engine over the embedded views.
func NewViews() (*html.Engine, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", func(v float64) string { return fmt.Sprintf("%.2f", v) })
	engine.AddFunc("lineTotal", lineTotal)
	engine.AddFunc("hasPrefix", strings.HasPrefix)
	engine.AddFunc("card", func(p dto.ProductResponse, role string) map[string]any {
		return map[string]any{"Product": p, "Role": role}
	})
	return engine, nil
}

func lineTotal(price float64, quantity int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	return price * float64(quantity)
}
