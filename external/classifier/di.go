package classifier

import (
	"github.com/foxseedlab/rusuban/internal/classifier"
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (classifier.Classifier, error) {
		c := do.MustInvoke[*config.Config](i)
		if !c.EnhancedClassifierEnabled() {
			return classifier.NewKeyword(), nil
		}
		remote := NewOpenAIClassifier(c.LLMAPIKey, c.LLMBaseURL, c.LLMModel)
		return classifier.NewFallback(remote), nil
	})
}
