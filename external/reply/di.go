package reply

import (
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/reply"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (reply.Composer, error) {
		c := do.MustInvoke[*config.Config](i)
		if !c.LLMReplyEnabled || c.LLMAPIKey == "" {
			return reply.NewStaticComposer(), nil
		}
		remote := NewOpenAIGenerator(c.LLMAPIKey, c.LLMBaseURL, c.LLMModel)
		return reply.NewGeneratedComposer(remote), nil
	})
}
