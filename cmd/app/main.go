package main

import (
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
