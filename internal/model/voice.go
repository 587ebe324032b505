package model

const (
	DefaultSpeechRate   = 150
	DefaultSpeechVolume = 0.9
)

// VoiceSettings holds the speech rate (words per minute) and volume.
type VoiceSettings struct {
	Rate   int     `json:"rate" validate:"min=50,max=300"`
	Volume float64 `json:"volume" validate:"min=0,max=1"`
}

// DefaultVoiceSettings returns the settings used at startup.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{Rate: DefaultSpeechRate, Volume: DefaultSpeechVolume}
}
