package call

import "fmt"

const (
	greetingGenericSentence    = "Hello! Please speak after the beep."
	greetingModeAwareFormat    = "The user is currently in %s mode. Please speak after the beep."
	sentenceNoRecording        = "Sorry, I did not get that. Goodbye."
	sentenceProcessingError    = "Sorry, there was an error processing your message."
	sentenceConnectingToBridge = "This seems urgent. I will connect you to the user now. Please hold."
)

func modeAwareGreeting(mode string) string {
	return fmt.Sprintf(greetingModeAwareFormat, mode)
}
