package recording

import (
	"time"

	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/recording"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (recording.Fetcher, error) {
		c := do.MustInvoke[*config.Config](i)
		timeout := time.Duration(c.RecordingFetchTimeoutSec) * time.Second
		return NewHTTPFetcher(timeout, c.TwilioAccountSID, c.TwilioAuthToken), nil
	})
}
