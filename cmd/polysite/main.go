// cmd/polysite/main.go

// Command polysite runs the multi-tenant content delivery service: it loads
// configuration, connects MongoDB and Redis, and serves themed pages plus the
// delivery and admin APIs until signalled to stop.
package main

import (
	"context"

	"github.com/dalemusser/waffle/app"

	"github.com/polysite/polysite/internal/app/bootstrap"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
