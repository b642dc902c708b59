package notify

import (
	"time"

	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/notify"
	"github.com/samber/do/v2"
)

const requestTimeout = 10 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (notify.Notifier, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewHTTPSender(c.NotifyWebhookURL, requestTimeout), nil
	})
}
