package httpserver

import (
	"github.com/foxseedlab/rusuban/internal/call"
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/control"
	"github.com/foxseedlab/rusuban/internal/repository"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctrl := do.MustInvoke[*control.Service](i)
		router := do.MustInvoke[*call.Router](i)
		repo := do.MustInvoke[repository.Repository](i)
		return New(cfg, ctrl, router, repo), nil
	})
}
