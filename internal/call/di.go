package call

import (
	"github.com/foxseedlab/rusuban/internal/classifier"
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/notify"
	"github.com/foxseedlab/rusuban/internal/recording"
	"github.com/foxseedlab/rusuban/internal/reply"
	"github.com/foxseedlab/rusuban/internal/repository"
	"github.com/foxseedlab/rusuban/internal/state"
	"github.com/foxseedlab/rusuban/internal/transcriber"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Router, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[*state.Store](i)
		repo := do.MustInvoke[repository.Repository](i)
		stt := do.MustInvoke[transcriber.Transcriber](i)
		fetcher := do.MustInvoke[recording.Fetcher](i)
		cls := do.MustInvoke[classifier.Classifier](i)
		composer := do.MustInvoke[reply.Composer](i)
		notifier := do.MustInvoke[notify.Notifier](i)
		return NewRouter(cfg, store, repo, stt, fetcher, cls, composer, notifier), nil
	})
}
